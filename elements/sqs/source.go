// Package sqs provides SourceElement and SinkElement implementations backed
// by Amazon SQS, adapted from connectors/aws/sqs's Source/SendFlow (same
// client-interface-and-config shape, re-expressed as a single-pad polling
// SourceElement and a single-pad SinkElement instead of a linear Source/Flow
// chain).
package sqs

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"

	"github.com/dataflowgraph/sgn/core"
)

// ReceiveClient is the SQS operation this package's Source needs.
type ReceiveClient interface {
	ReceiveMessage(ctx context.Context, params *sqs.ReceiveMessageInput, optFns ...func(*sqs.Options)) (*sqs.ReceiveMessageOutput, error)
	DeleteMessage(ctx context.Context, params *sqs.DeleteMessageInput, optFns ...func(*sqs.Options)) (*sqs.DeleteMessageOutput, error)
}

// SourceConfig mirrors connectors/aws/sqs.SourceConfig.
type SourceConfig struct {
	QueueURL            string
	MaxNumberOfMessages int32
	WaitTimeSeconds     int32
	VisibilityTimeout   int32
	PollInterval        time.Duration
}

func (c SourceConfig) withDefaults() SourceConfig {
	if c.MaxNumberOfMessages == 0 {
		c.MaxNumberOfMessages = 10
	}
	if c.WaitTimeSeconds == 0 {
		c.WaitTimeSeconds = 20
	}
	if c.VisibilityTimeout == 0 {
		c.VisibilityTimeout = 30
	}
	if c.PollInterval == 0 {
		c.PollInterval = time.Second
	}
	return c
}

// fakeSourceState polls SQS for a batch of messages whenever its buffer is
// empty, emitting one message per frame from that buffer, and keeps polling
// (sleeping PollInterval between empty batches) until a batch is non-empty.
// There is no EOS condition for a live queue: New never sets Frame.EOS, matching
// original_source's pattern of wrapping unbounded streams in elements that
// the host pipeline shuts down externally (e.g. via context cancellation).
type fakeSourceState struct {
	client  ReceiveClient
	config  SourceConfig
	buf     []types.Message
	padName string
}

// New implements core.SourceHooks.
func (s *fakeSourceState) New(ctx context.Context, pad *core.SourcePad) (core.Frame, error) {
	for len(s.buf) == 0 {
		resp, err := s.client.ReceiveMessage(ctx, &sqs.ReceiveMessageInput{
			QueueUrl:            &s.config.QueueURL,
			MaxNumberOfMessages: s.config.MaxNumberOfMessages,
			WaitTimeSeconds:     s.config.WaitTimeSeconds,
			VisibilityTimeout:   s.config.VisibilityTimeout,
		})
		if err != nil {
			return core.Frame{}, fmt.Errorf("sqs source %q: receive: %w", s.padName, err)
		}
		if len(resp.Messages) > 0 {
			s.buf = resp.Messages
			break
		}
		select {
		case <-ctx.Done():
			return core.Frame{}, ctx.Err()
		case <-time.After(s.config.PollInterval):
		}
	}

	msg := s.buf[0]
	s.buf = s.buf[1:]

	frame := core.NewFrame()
	frame.Metadata["message"] = msg
	frame.Metadata["receipt_handle"] = msg.ReceiptHandle
	return frame, nil
}

// Delete removes a message from the queue by receipt handle, to be called
// once downstream processing of a frame has completed successfully -
// mirroring at-least-once SQS consumption patterns where the receive call
// itself doesn't acknowledge the message.
func (s *fakeSourceState) Delete(ctx context.Context, receiptHandle string) error {
	_, err := s.client.DeleteMessage(ctx, &sqs.DeleteMessageInput{
		QueueUrl:      &s.config.QueueURL,
		ReceiptHandle: &receiptHandle,
	})
	return err
}

// NewSource constructs a single-source-pad SourceElement named name that
// polls client for messages on config.QueueURL.
func NewSource(name, padName string, client ReceiveClient, config SourceConfig) *core.SourceElement {
	state := &fakeSourceState{client: client, config: config.withDefaults(), padName: padName}
	return core.NewSourceElement(name, []string{padName}, state)
}
