package kafka_aws_ec2

import (
	"context"
	"errors"
	"testing"

	"github.com/Skyrin/go-dsbridge/e"
	"github.com/aws/aws-sdk-go-v2/credentials/ec2rolecreds"
	"github.com/segmentio/kafka-go/sasl/aws_msk_iam_v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSASLMechanismRequiresRegion(t *testing.T) {
	sm, err := NewSASLMechanism(context.Background(), SASLMechanismConfig{})
	assert.Nil(t, sm)
	assert.True(t, errors.Is(err, e.ErrConfiguration))
}

func TestNewSASLMechanismStaticCredentials(t *testing.T) {
	sm, err := NewSASLMechanism(context.Background(), SASLMechanismConfig{
		Region:          "eu-west-1",
		AccessKeyID:     "AKIDTEST",
		SecretAccessKey: "secret",
		SessionToken:    "session",
	})
	require.NoError(t, err)

	m, ok := sm.(*aws_msk_iam_v2.Mechanism)
	require.True(t, ok)
	assert.Equal(t, "eu-west-1", m.Region)
	assert.Equal(t, "AWS_MSK_IAM", m.Name())

	creds, err := m.Credentials.Retrieve(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "AKIDTEST", creds.AccessKeyID)
	assert.Equal(t, "secret", creds.SecretAccessKey)
	assert.Equal(t, "session", creds.SessionToken)
}

func TestNewSASLMechanismPartialCredentials(t *testing.T) {
	sm, err := NewSASLMechanism(context.Background(), SASLMechanismConfig{
		Region:      "eu-west-1",
		AccessKeyID: "AKIDTEST",
	})
	assert.Nil(t, sm)
	require.Error(t, err)
	assert.True(t, errors.Is(err, e.ErrConfiguration))
}

func TestCredentialsProviderDefaultsToRole(t *testing.T) {
	cp, err := SASLMechanismConfig{Region: "eu-west-1"}.credentialsProvider()
	require.NoError(t, err)
	_, ok := cp.(*ec2rolecreds.Provider)
	assert.True(t, ok)
}
