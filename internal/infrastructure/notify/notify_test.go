package notify

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/request"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"
	"github.com/rs/zerolog"

	"github.com/yamdb/review-api/internal/core/ports"
)

type stubSES struct {
	sesiface.SESAPI
	input *ses.SendEmailInput
	err   error
}

func (s *stubSES) SendEmailWithContext(_ aws.Context, in *ses.SendEmailInput, _ ...request.Option) (*ses.SendEmailOutput, error) {
	s.input = in
	if s.err != nil {
		return nil, s.err
	}
	return &ses.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSink_Send(t *testing.T) {
	client := &stubSES{}
	sink := NewSESSinkWithClient(client, "admin@yamdb.com")

	err := sink.Send(context.Background(), ports.Message{To: "alice@example.com", Subject: "Code", Body: "ABCD1234"})
	if err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if got := aws.StringValue(client.input.Source); got != "admin@yamdb.com" {
		t.Fatalf("source = %q", got)
	}
	if got := aws.StringValue(client.input.Destination.ToAddresses[0]); got != "alice@example.com" {
		t.Fatalf("to = %q", got)
	}
	if got := aws.StringValue(client.input.Message.Body.Text.Data); got != "ABCD1234" {
		t.Fatalf("body = %q", got)
	}
}

func TestSESSink_SendError(t *testing.T) {
	boom := errors.New("throttled")
	sink := NewSESSinkWithClient(&stubSES{err: boom}, "admin@yamdb.com")

	err := sink.Send(context.Background(), ports.Message{To: "bob@example.com"})
	if !errors.Is(err, boom) {
		t.Fatalf("expected wrapped error, got %v", err)
	}
}

func TestLogSink_Send(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(zerolog.New(&buf))

	if err := sink.Send(context.Background(), ports.Message{To: "carol@example.com", Subject: "Code", Body: "XYZ"}); err != nil {
		t.Fatalf("Send returned error: %v", err)
	}
	if !strings.Contains(buf.String(), `"to":"carol@example.com"`) {
		t.Fatalf("log line missing recipient: %s", buf.String())
	}
}
