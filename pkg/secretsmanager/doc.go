// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0
// no-cloc

// Package secretsmanager backs the !{NAME:REGION} secret markers with AWS
// Secrets Manager.
//
// The marker param is the AWS region the secret lives in. NAME is the secret
// id or ARN, optionally followed by #path to select a key out of a JSON
// secret, e.g. !{prod/db#password:us-east-1}.
package secretsmanager
