// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package secretsmanager

import (
	"context"
	"errors"
	"fmt"
	"strings"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	sm "github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/aws/smithy-go"

	"github.com/tfctl/cfgload/internal/driller"
	"github.com/tfctl/cfgload/internal/log"
	"github.com/tfctl/cfgload/pkg/loader"
)

// PathSeparator splits a secret id from the JSON path selected out of it.
const PathSeparator = "#"

// API is the subset of the Secrets Manager client used by Backend.
type API interface {
	GetSecretValue(ctx context.Context, params *sm.GetSecretValueInput, optFns ...func(*sm.Options)) (*sm.GetSecretValueOutput, error)
}

// Backend implements loader.SecretBackend over Secrets Manager.
type Backend struct {
	api          API
	versionStage string
}

var _ loader.SecretBackend = (*Backend)(nil)

// New loads AWS config and returns a backend using a fresh client.
func New(ctx context.Context, opts ...Option) (*Backend, error) {
	cfg, err := LoadAWSConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load aws config: %w", err)
	}
	return NewFromAPI(NewClient(cfg), opts...), nil
}

// NewFromAPI returns a backend over an existing client. Only lookup options
// (WithVersionStage) are honoured.
func NewFromAPI(api API, opts ...Option) *Backend {
	o := applyOptions(opts)
	return &Backend{api: api, versionStage: o.versionStage}
}

// Get fetches secretID from the region named by namespace. An id of the form
// "name#path" selects path out of a JSON secret; a path that does not resolve
// counts as not found.
func (b *Backend) Get(ctx context.Context, secretID, namespace string) (string, bool, error) {
	id, path, _ := strings.Cut(secretID, PathSeparator)

	in := &sm.GetSecretValueInput{SecretId: awsv2.String(id)}
	if b.versionStage != "" {
		in.VersionStage = awsv2.String(b.versionStage)
	}

	out, err := b.api.GetSecretValue(ctx, in, func(o *sm.Options) {
		o.Region = namespace
	})
	if err != nil {
		var nf *types.ResourceNotFoundException
		if errors.As(err, &nf) {
			log.Warnf("secret %s not found in %s", id, namespace)
			return "", false, nil
		}
		var ae smithy.APIError
		if errors.As(err, &ae) {
			log.Debugf("secret %s in %s: api error code=%s fault=%s", id, namespace, ae.ErrorCode(), ae.ErrorFault())
			return "", false, fmt.Errorf("%s: %w", ae.ErrorCode(), err)
		}
		return "", false, err
	}

	var value string
	switch {
	case out.SecretString != nil:
		value = *out.SecretString
	case out.SecretBinary != nil:
		value = string(out.SecretBinary)
	default:
		log.Warnf("secret %s in %s has no value", id, namespace)
		return "", false, nil
	}

	if path == "" {
		return value, true, nil
	}

	selected, ok := driller.Select(value, path)
	if !ok {
		log.Warnf("key %s not found in secret %s in %s", path, id, namespace)
		return "", false, nil
	}
	return selected, true, nil
}
