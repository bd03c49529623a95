//go:build integration

package sqs_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/stretchr/testify/require"

	"github.com/dataflowgraph/sgn/core"
	sgnsqs "github.com/dataflowgraph/sgn/elements/sqs"
	"github.com/dataflowgraph/sgn/sgntest"
)

// oneShotSource emits a single frame carrying body, then EOS.
type oneShotSource struct {
	body string
	sent bool
}

func (s *oneShotSource) New(ctx context.Context, pad *core.SourcePad) (core.Frame, error) {
	frame := core.NewFrame()
	frame.Metadata["body"] = s.body
	frame.EOS = s.sent
	s.sent = true
	return frame, nil
}

// recordingSink captures the body of the first message it receives and
// marks EOS immediately, terminating the receive-side pipeline.
type recordingSink struct {
	elem *core.SinkElement
	mu   sync.Mutex
	got  string
}

func (s *recordingSink) Pull(ctx context.Context, pad *core.SinkPad, frame core.Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if msg, ok := frame.Metadata["message"].(types.Message); ok && msg.Body != nil {
		s.got = *msg.Body
	}
	s.elem.MarkEOS(pad)
	return nil
}

// TestSQSSourceAndSinkRoundTripThroughLocalstack sends one frame through
// elements/sqs's Sink into a real queue, then reads it back out through
// elements/sqs's Source, against a localstack container - exercising both
// halves of this package end to end the way connectors/aws/sqs's own
// localstack-backed tests exercise Source/SendFlow.
func TestSQSSourceAndSinkRoundTripThroughLocalstack(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	awsCfg, container, err := sgntest.SetupLocalstack(ctx)
	require.NoError(t, err)
	defer container.Terminate(ctx)

	client := sqs.NewFromConfig(*awsCfg)
	created, err := client.CreateQueue(ctx, &sqs.CreateQueueInput{QueueName: aws.String("sgn-test-queue")})
	require.NoError(t, err)
	queueURL := *created.QueueUrl

	sendElem := sgnsqs.NewSink("send1", "out", client, sgnsqs.SinkConfig{QueueURL: queueURL}, func(f core.Frame) (*sqs.SendMessageInput, error) {
		body, _ := f.Metadata["body"].(string)
		return &sqs.SendMessageInput{MessageBody: &body}, nil
	})
	sendSrc := core.NewSourceElement("gen1", []string{"body"}, &oneShotSource{body: "hello from the pipeline"})

	sendPipeline := core.NewPipeline()
	require.NoError(t, sendPipeline.Insert(sendSrc, sendElem))
	require.NoError(t, sendPipeline.Link(map[string]string{"send1:sink:out": "gen1:src:body"}))
	sendCtx, sendCancel := context.WithTimeout(ctx, 10*time.Second)
	defer sendCancel()
	require.NoError(t, sendPipeline.Run(sendCtx))

	recvElem := sgnsqs.NewSource("recv1", "in", client, sgnsqs.SourceConfig{
		QueueURL:        queueURL,
		WaitTimeSeconds: 1,
		PollInterval:    200 * time.Millisecond,
	})
	recorder := &recordingSink{}
	recvSink := core.NewSinkElement("capture1", []string{"in"}, recorder)
	recorder.elem = recvSink

	recvPipeline := core.NewPipeline()
	require.NoError(t, recvPipeline.Insert(recvElem, recvSink))
	require.NoError(t, recvPipeline.Link(map[string]string{"capture1:sink:in": "recv1:src:in"}))
	recvCtx, recvCancel := context.WithTimeout(ctx, 10*time.Second)
	defer recvCancel()
	require.NoError(t, recvPipeline.Run(recvCtx))

	require.Equal(t, "hello from the pipeline", recorder.got)
}
