package sqs

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dataflowgraph/sgn/core"
)

type fakeSendClient struct {
	sent []*sqs.SendMessageInput
	err  error
}

func (f *fakeSendClient) SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.sent = append(f.sent, params)
	return &sqs.SendMessageOutput{}, nil
}

func constBuilder(body string) MessageBuilder {
	return func(core.Frame) (*sqs.SendMessageInput, error) {
		return &sqs.SendMessageInput{MessageBody: &body}, nil
	}
}

func TestSinkSendsNonEOSFrameAndFillsDefaults(t *testing.T) {
	client := &fakeSendClient{}
	elem := NewSink("snk1", "H1", client, SinkConfig{QueueURL: "q", DelaySeconds: 5}, constBuilder("hello"))
	pad := elem.SinkPads()[0]
	sink := &sqsSink{elem: elem, client: client, config: SinkConfig{QueueURL: "q", DelaySeconds: 5}, builder: constBuilder("hello")}

	require.NoError(t, sink.Pull(context.Background(), pad, core.NewFrame()))
	require.Len(t, client.sent, 1)
	assert.Equal(t, "q", *client.sent[0].QueueUrl)
	assert.Equal(t, int32(5), client.sent[0].DelaySeconds)
	assert.Equal(t, "hello", *client.sent[0].MessageBody)
}

func TestSinkSkipsSendOnEOS(t *testing.T) {
	client := &fakeSendClient{}
	elem := NewSink("snk1", "H1", client, SinkConfig{QueueURL: "q"}, constBuilder("hello"))
	pad := elem.SinkPads()[0]
	sink := &sqsSink{elem: elem, client: client, config: SinkConfig{QueueURL: "q"}, builder: constBuilder("hello")}

	require.NoError(t, sink.Pull(context.Background(), pad, core.Frame{EOS: true}))
	assert.Empty(t, client.sent)
	assert.True(t, elem.AtEOS())
}

func TestSinkWrapsSendError(t *testing.T) {
	client := &fakeSendClient{err: errors.New("throttled")}
	elem := NewSink("snk1", "H1", client, SinkConfig{QueueURL: "q"}, constBuilder("hello"))
	pad := elem.SinkPads()[0]
	sink := &sqsSink{elem: elem, client: client, config: SinkConfig{QueueURL: "q"}, builder: constBuilder("hello")}

	err := sink.Pull(context.Background(), pad, core.NewFrame())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "throttled")
}
