package sqs

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/sqs"

	"github.com/dataflowgraph/sgn/core"
)

// SendClient is the SQS operation this package's Sink needs, matching
// connectors/aws/sqs.SQSSendClient.
type SendClient interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// SinkConfig mirrors connectors/aws/sqs.SendFlowConfig.
type SinkConfig struct {
	QueueURL     string
	DelaySeconds int32
}

// MessageBuilder turns a Frame into an outgoing SQS message body, the Go
// analogue of SendFlow's messageBuilder callback.
type MessageBuilder func(core.Frame) (*sqs.SendMessageInput, error)

type sqsSink struct {
	elem    *core.SinkElement
	client  SendClient
	config  SinkConfig
	builder MessageBuilder
}

// Pull implements core.SinkHooks: every non-EOS frame is sent to SQS via
// builder; an EOS frame just marks the pad and is not sent.
func (s *sqsSink) Pull(ctx context.Context, pad *core.SinkPad, frame core.Frame) error {
	if frame.EOS {
		s.elem.MarkEOS(pad)
		return nil
	}
	input, err := s.builder(frame)
	if err != nil {
		return fmt.Errorf("sqs sink %q: building message: %w", pad.Name(), err)
	}
	if input.QueueUrl == nil {
		input.QueueUrl = &s.config.QueueURL
	}
	if input.DelaySeconds == 0 && s.config.DelaySeconds > 0 {
		input.DelaySeconds = s.config.DelaySeconds
	}
	if _, err := s.client.SendMessage(ctx, input); err != nil {
		return fmt.Errorf("sqs sink %q: send: %w", pad.Name(), err)
	}
	return nil
}

// NewSink constructs a single-sink-pad SinkElement named name that sends
// every non-EOS frame it receives to client as an SQS message, built by
// builder.
func NewSink(name, padName string, client SendClient, config SinkConfig, builder MessageBuilder) *core.SinkElement {
	hooks := &sqsSink{client: client, config: config, builder: builder}
	elem := core.NewSinkElement(name, []string{padName}, hooks)
	hooks.elem = elem
	return elem
}
