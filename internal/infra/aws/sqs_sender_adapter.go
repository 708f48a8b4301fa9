package aws

import (
	"forecast-api/internal/domain/gateway/queue"
	"forecast-api/pkg/sqs"
)

// NewSQSSenderAdapter adapts pkg/sqs.Sender to the domain queue.Sender interface
func NewSQSSenderAdapter(sqsClient sqs.SQSClient) queue.Sender {
	return sqs.NewSender(sqsClient)
}
