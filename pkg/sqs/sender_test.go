package sqs

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
)

type fakeSQSClient struct {
	queueURL     string
	getURLCalls  int
	getURLErr    error
	sendErr      error
	lastSendBody string
	lastInput    *sqs.SendMessageInput
}

func (f *fakeSQSClient) GetQueueUrl(ctx context.Context, params *sqs.GetQueueUrlInput, optFns ...func(*sqs.Options)) (*sqs.GetQueueUrlOutput, error) {
	f.getURLCalls++
	if f.getURLErr != nil {
		return nil, f.getURLErr
	}
	return &sqs.GetQueueUrlOutput{QueueUrl: aws.String(f.queueURL)}, nil
}

func (f *fakeSQSClient) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if f.sendErr != nil {
		return nil, f.sendErr
	}
	f.lastInput = params
	f.lastSendBody = aws.ToString(params.MessageBody)
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSendMessage(t *testing.T) {
	client := &fakeSQSClient{queueURL: "http://localhost:4566/000000000000/forecast-served"}
	sender := NewSender(client)

	body := map[string]any{"shortForecast": "Sunny", "temperatureF": 72}
	id, err := sender.SendMessage(context.Background(), "forecast-served", body, map[string]string{"eventType": "ForecastServed"})
	if err != nil {
		t.Fatalf("SendMessage() error = %v", err)
	}
	if id != "msg-1" {
		t.Errorf("message id = %q", id)
	}
	if aws.ToString(client.lastInput.QueueUrl) != client.queueURL {
		t.Errorf("queue url = %q", aws.ToString(client.lastInput.QueueUrl))
	}

	var decoded map[string]any
	if err := json.Unmarshal([]byte(client.lastSendBody), &decoded); err != nil {
		t.Fatalf("body is not JSON: %v", err)
	}
	if decoded["shortForecast"] != "Sunny" {
		t.Errorf("body = %s", client.lastSendBody)
	}

	attr, ok := client.lastInput.MessageAttributes["eventType"]
	if !ok || aws.ToString(attr.StringValue) != "ForecastServed" || aws.ToString(attr.DataType) != "String" {
		t.Errorf("attributes = %#v", client.lastInput.MessageAttributes)
	}
}

func TestQueueURLIsCached(t *testing.T) {
	client := &fakeSQSClient{queueURL: "http://queue"}
	sender := NewSender(client)

	for i := 0; i < 3; i++ {
		if _, err := sender.SendMessage(context.Background(), "q", "x", nil); err != nil {
			t.Fatalf("SendMessage() error = %v", err)
		}
	}
	if client.getURLCalls != 1 {
		t.Errorf("GetQueueUrl calls = %d, want 1", client.getURLCalls)
	}
}

func TestSendMessageErrors(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeSQSClient
		body   any
	}{
		{"queue lookup fails", &fakeSQSClient{getURLErr: errors.New("no such queue")}, "x"},
		{"send fails", &fakeSQSClient{queueURL: "http://queue", sendErr: errors.New("throttled")}, "x"},
		{"body not serializable", &fakeSQSClient{queueURL: "http://queue"}, make(chan int)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := NewSender(tt.client).SendMessage(context.Background(), "q", tt.body, nil); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestCheckQueueSkipsCache(t *testing.T) {
	client := &fakeSQSClient{queueURL: "http://queue"}
	sender := NewSender(client)

	for i := 0; i < 2; i++ {
		url, err := sender.CheckQueue(context.Background(), "q")
		if err != nil || url != "http://queue" {
			t.Fatalf("CheckQueue() = %q, %v", url, err)
		}
	}
	if client.getURLCalls != 2 {
		t.Errorf("GetQueueUrl calls = %d, want 2", client.getURLCalls)
	}
}
