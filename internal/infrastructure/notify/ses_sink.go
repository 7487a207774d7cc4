package notify

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/ses"
	"github.com/aws/aws-sdk-go/service/ses/sesiface"

	"github.com/yamdb/review-api/internal/core/ports"
)

const charset = "UTF-8"

// SESConfig selects the region and sender. Endpoint overrides the AWS URL
// for local emulators.
type SESConfig struct {
	Region   string
	Endpoint string
	From     string
}

// SESSink delivers messages through Amazon SES.
type SESSink struct {
	client sesiface.SESAPI
	from   string
}

// NewSESSink builds a sink using the default AWS credential chain.
func NewSESSink(cfg SESConfig) (*SESSink, error) {
	awsConfig := &aws.Config{Region: aws.String(cfg.Region)}
	if cfg.Endpoint != "" {
		awsConfig.Endpoint = aws.String(cfg.Endpoint)
	}
	sess, err := session.NewSession(awsConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create AWS session: %w", err)
	}
	return NewSESSinkWithClient(ses.New(sess), cfg.From), nil
}

func NewSESSinkWithClient(client sesiface.SESAPI, from string) *SESSink {
	return &SESSink{client: client, from: from}
}

func (s *SESSink) Send(ctx context.Context, msg ports.Message) error {
	input := &ses.SendEmailInput{
		Source:      aws.String(s.from),
		Destination: &ses.Destination{ToAddresses: []*string{aws.String(msg.To)}},
		Message: &ses.Message{
			Subject: &ses.Content{Charset: aws.String(charset), Data: aws.String(msg.Subject)},
			Body: &ses.Body{
				Text: &ses.Content{Charset: aws.String(charset), Data: aws.String(msg.Body)},
			},
		},
	}
	if _, err := s.client.SendEmailWithContext(ctx, input); err != nil {
		return fmt.Errorf("ses send to %s: %w", msg.To, err)
	}
	return nil
}
