package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/application/dto"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/domain/model"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/internal/infrastructure/panel"
	"github.com/ggonevn2t4/vay-thong-minh-viet-sub001/pkg/auth"
)

func newTestCLI(stdin string) (*cli, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &cli{
		stdin:  strings.NewReader(stdin),
		stdout: out,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}, out
}

const applicantJSON = `{
	"credit_history": "good",
	"employment_type": "full-time",
	"housing_status": "rent",
	"occupation_category": "other",
	"loan_purpose": "home",
	"monthly_income": 10000000,
	"monthly_expenses": 3000000,
	"desired_loan_amount": 100000000,
	"years_in_current_employment": 2,
	"age": 30,
	"desired_term_years": 10
}`

func TestRun_UnknownCommand(t *testing.T) {
	c, _ := newTestCLI("")
	code, err := c.run(t.Context(), "frobnicate", nil)
	assert.ErrorIs(t, err, errUnknownCommand)
	assert.Equal(t, exitUsage, code)
}

func TestValidate_Builtin(t *testing.T) {
	c, out := newTestCLI("")

	code, err := c.run(t.Context(), "validate", nil)
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out.String(), "5 lenders")
	assert.Contains(t, out.String(), "mbbank")

	code, err = c.run(t.Context(), "validate", []string{"-strict"})
	assert.Error(t, err)
	assert.Equal(t, exitFailure, code)
}

func TestValidate_BadFlag(t *testing.T) {
	c, _ := newTestCLI("")
	code, err := c.run(t.Context(), "validate", []string{"-nope"})
	assert.Error(t, err)
	assert.Equal(t, exitUsage, code)
}

func TestExport_ThenValidateFile(t *testing.T) {
	c, out := newTestCLI("")
	code, err := c.run(t.Context(), "export", nil)
	require.NoError(t, err)
	require.Equal(t, exitOK, code)

	path := filepath.Join(t.TempDir(), "panel.yaml")
	require.NoError(t, os.WriteFile(path, out.Bytes(), 0o600))

	exported, err := panel.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, panel.Default().Len(), exported.Len())

	c, out = newTestCLI("")
	code, err = c.run(t.Context(), "validate", []string{"-file", path})
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out.String(), "5 lenders")
}

func TestImport_UsesReplace(t *testing.T) {
	c, _ := newTestCLI("")
	var got *model.LenderPanel
	c.replace = func(_ context.Context, p *model.LenderPanel) error {
		got = p
		return nil
	}

	code, err := c.run(t.Context(), "import", nil)
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)
	require.NotNil(t, got)
	assert.Equal(t, 5, got.Len())
}

func TestImport_MissingFile(t *testing.T) {
	c, _ := newTestCLI("")
	c.replace = func(context.Context, *model.LenderPanel) error { return nil }

	code, err := c.run(t.Context(), "import", []string{"-file", filepath.Join(t.TempDir(), "absent.yaml")})
	assert.Error(t, err)
	assert.Equal(t, exitFailure, code)
}

func TestEvaluate(t *testing.T) {
	c, out := newTestCLI(applicantJSON)

	code, err := c.run(t.Context(), "evaluate", []string{"-strict"})
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)

	var resp dto.EvaluationResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	assert.Equal(t, 96, resp.Score.Score)
	assert.Len(t, resp.Matches, 5)
	assert.Empty(t, resp.Advisories)
}

func TestEvaluate_StrictWithAdvisories(t *testing.T) {
	body := strings.Replace(applicantJSON, `"desired_loan_amount": 100000000`, `"desired_loan_amount": 900000000`, 1)
	c, out := newTestCLI(body)

	code, err := c.run(t.Context(), "evaluate", []string{"-strict"})
	require.NoError(t, err)
	assert.Equal(t, exitAdvisories, code)

	var resp dto.EvaluationResponse
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Len(t, resp.Advisories, 1)
	assert.Equal(t, string(model.AdvisoryLoanExceedsIncomeMultiple), resp.Advisories[0].Code)
}

func TestEvaluate_BadInput(t *testing.T) {
	c, _ := newTestCLI(`{"shoe_size": 9}`)
	code, err := c.run(t.Context(), "evaluate", nil)
	assert.Error(t, err)
	assert.Equal(t, exitUsage, code)

	c, _ = newTestCLI(applicantJSON)
	code, err = c.run(t.Context(), "evaluate", []string{"-currency", "vn"})
	assert.Error(t, err)
	assert.Equal(t, exitUsage, code)
}

func TestDevCerts(t *testing.T) {
	dir := t.TempDir()
	c, out := newTestCLI("")

	code, err := c.run(t.Context(), "dev-certs", []string{"-out", dir, "-hosts", "localhost, 127.0.0.1"})
	require.NoError(t, err)
	assert.Equal(t, exitOK, code)
	assert.Contains(t, out.String(), filepath.Join(dir, "server.pem"))
	assert.FileExists(t, filepath.Join(dir, "ca.pem"))
	assert.FileExists(t, filepath.Join(dir, "server-key.pem"))
}

func TestToken(t *testing.T) {
	c, out := newTestCLI("")
	code, err := c.run(t.Context(), "token", []string{"-secret", "s3cret", "-subject", "ops"})
	require.NoError(t, err)
	require.Equal(t, exitOK, code)

	svc, err := auth.NewJWTService(auth.JWTConfig{Secret: "s3cret", Issuer: "loanmatch"})
	require.NoError(t, err)
	claims, err := svc.ValidateToken(strings.TrimSpace(out.String()))
	require.NoError(t, err)
	assert.Equal(t, "ops", claims.Subject)
	assert.True(t, claims.HasRole(auth.RolePanelAdmin))

	c, _ = newTestCLI("")
	code, err = c.run(t.Context(), "token", nil)
	assert.ErrorIs(t, err, auth.ErrNotConfigured)
	assert.Equal(t, exitUsage, code)
}
