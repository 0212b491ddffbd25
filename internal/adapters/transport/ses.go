package transport

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"
	"go.uber.org/zap"
)

// SESTransport delivers messages through the AWS SES v2 API, as an
// alternative to a direct SMTP connection.
type SESTransport struct {
	client *sesv2.Client
	logger *zap.Logger
}

// NewSES builds an SES transport from the ambient AWS credential chain.
func NewSES(ctx context.Context, region string, logger *zap.Logger) (*SESTransport, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("loading AWS config: %w", err)
	}
	logger.Info("using SES transport", zap.String("region", region))
	return &SESTransport{client: sesv2.NewFromConfig(awsCfg), logger: logger}, nil
}

// Send submits the already composed message as raw content, so headers stay
// byte-identical with the archived copy.
func (t *SESTransport) Send(ctx context.Context, from string, recipients []string, msg []byte) error {
	_, err := t.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(from),
		Destination:      &types.Destination{ToAddresses: recipients},
		Content: &types.EmailContent{
			Raw: &types.RawMessage{Data: msg},
		},
	})
	if err != nil {
		return fmt.Errorf("SES send failed: %w", err)
	}
	return nil
}

// Close is a no-op; the SES client holds no connection state.
func (t *SESTransport) Close() error {
	return nil
}
