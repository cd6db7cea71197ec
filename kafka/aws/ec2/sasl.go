package kafka_aws_ec2

import (
	"context"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/credentials/ec2rolecreds"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/aws_msk_iam_v2"
)

const (
	// Error constants
	ECode080101 = e.Code0801 + "01"
	ECode080102 = e.Code0801 + "02"
	ECode080103 = e.Code0801 + "03"
)

// SASLMechanismConfig configuration options for NewSASLMechanism
type SASLMechanismConfig struct {
	Region string
	// AccessKeyID and SecretAccessKey of an IAM user allowed on the cluster.
	// If both are empty the ec2 role credentials are used
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
}

// credentialsProvider returns the static credentials if set, otherwise the
// ec2 role ones
func (c SASLMechanismConfig) credentialsProvider() (aws.CredentialsProvider, error) {
	if c.AccessKeyID == "" && c.SecretAccessKey == "" {
		return ec2rolecreds.New(), nil
	}
	if c.AccessKeyID == "" || c.SecretAccessKey == "" {
		return nil, e.NK(e.ErrConfiguration, ECode080103,
			"access key id and secret access key must be set together")
	}

	return credentials.NewStaticCredentialsProvider(c.AccessKeyID, c.SecretAccessKey, c.SessionToken), nil
}

// NewSASLMechanism returns a new MSK IAM SASL mechanism signing with the
// configured credentials
func NewSASLMechanism(ctx context.Context, c SASLMechanismConfig) (sm sasl.Mechanism, err error) {
	if c.Region == "" {
		return nil, e.NK(e.ErrConfiguration, ECode080101, "region not specified")
	}

	cp, err := c.credentialsProvider()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(c.Region))
	if err != nil {
		return nil, e.W(err, ECode080102)
	}
	cfg.Credentials = aws.NewCredentialsCache(cp)

	return aws_msk_iam_v2.NewMechanism(cfg), nil
}
