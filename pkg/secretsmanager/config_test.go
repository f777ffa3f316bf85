// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

package secretsmanager

import (
	"context"
	"testing"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/aws/retry"
	sm "github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOptions verifies that option functions populate the options struct and
// that later options override earlier ones.
func TestOptions(t *testing.T) {
	o := applyOptions([]Option{
		WithProfile("test-profile"),
		WithRegion("us-east-1"),
		WithRegion("ap-southeast-1"),
		WithRetryer(func() awsv2.Retryer { return retry.NewStandard() }),
		WithVersionStage("AWSCURRENT"),
	})

	assert.Equal(t, "test-profile", o.profile)
	assert.Equal(t, "ap-southeast-1", o.region)
	assert.Equal(t, "AWSCURRENT", o.versionStage)
	require.NotNil(t, o.retryer)
	assert.NotNil(t, o.retryer())
}

// TestLoadAWSConfig_WithRegion verifies that region option is applied
// during config loading.
func TestLoadAWSConfig_WithRegion(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("us-west-2"))

	assert.NoError(t, err)
	assert.Equal(t, "us-west-2", cfg.Region)
}

// TestLoadAWSConfig_MissingProfile verifies that an unknown shared profile is
// reported instead of silently ignored.
func TestLoadAWSConfig_MissingProfile(t *testing.T) {
	t.Setenv("AWS_CONFIG_FILE", t.TempDir()+"/config")
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", t.TempDir()+"/credentials")

	_, err := LoadAWSConfig(context.Background(), WithProfile("cfgload-no-such-profile"))
	assert.Error(t, err)

	_, err = New(context.Background(), WithProfile("cfgload-no-such-profile"))
	assert.ErrorContains(t, err, "failed to load aws config")
}

// TestNewClient verifies a client is constructed from a loaded config.
func TestNewClient(t *testing.T) {
	cfg, err := LoadAWSConfig(context.Background(), WithRegion("eu-central-1"))
	require.NoError(t, err)

	client := NewClient(cfg)
	assert.IsType(t, &sm.Client{}, client)
	assert.Equal(t, "eu-central-1", client.Options().Region)
}

// TestNew verifies the backend constructor wires a real client.
func TestNew(t *testing.T) {
	b, err := New(context.Background(), WithRegion("us-east-1"), WithVersionStage("AWSPENDING"))
	require.NoError(t, err)
	assert.IsType(t, &sm.Client{}, b.api)
	assert.Equal(t, "AWSPENDING", b.versionStage)
}
