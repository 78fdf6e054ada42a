package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"arrearscli/internal/loans"
)

const loanBookCSV = `Branch Name,Expected Matured On Date,Principal Amount,Total Expected Repayment Derived,Total Repayment Derived
Kitengala Branch,2026-01-05,700000,800000,628600
Kawangware Branch,2026-01-10,1000000,1200000,1000000
Advans Branch,2026-01-06,100000,100000,100000
`

func writeLoanBook(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "loans.csv")
	require.NoError(t, os.WriteFile(path, []byte(loanBookCSV), 0644))
	return path
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	t.Setenv("ARREARS_CONFIG", "")

	var stdout, stderr bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRootCmd_Table(t *testing.T) {
	stdout, _, err := execute(t, "--source", writeLoanBook(t))
	require.NoError(t, err)

	assert.Contains(t, stdout, "January arrear collection challenge")
	assert.Contains(t, stdout, "Expected (maturing 1–21 Jan)")
	assert.Contains(t, stdout, "Commission (3%)")
	assert.Contains(t, stdout, "Kitengala Branch")
	assert.Contains(t, stdout, "Ksh 15,000")
	assert.Contains(t, stdout, "Ksh 1,148,531")
	assert.NotContains(t, stdout, "Advans Branch")
}

func TestRootCmd_JSON(t *testing.T) {
	stdout, _, err := execute(t, "--source", writeLoanBook(t), "--output", "json")
	require.NoError(t, err)

	var body struct {
		RecordsLoaded int `json:"records_loaded"`
		Formatted     []struct {
			BranchName string `json:"branch_name"`
		} `json:"formatted"`
	}
	require.NoError(t, json.Unmarshal([]byte(stdout), &body))
	assert.Equal(t, 3, body.RecordsLoaded)
	require.Len(t, body.Formatted, 2)
	assert.Equal(t, "Kawangware Branch", body.Formatted[0].BranchName)
}

func TestRootCmd_Failures(t *testing.T) {
	t.Run("missing source", func(t *testing.T) {
		_, stderr, err := execute(t, "--source", filepath.Join(t.TempDir(), "sample.xlsx"))
		assert.ErrorIs(t, err, loans.ErrSourceUnavailable)
		assert.Contains(t, stderr, "arrears report failed")
	})

	t.Run("unknown output format", func(t *testing.T) {
		_, _, err := execute(t, "--source", writeLoanBook(t), "--output", "xml")
		assert.ErrorContains(t, err, "unknown output format")
	})

	t.Run("positional arguments rejected", func(t *testing.T) {
		_, _, err := execute(t, "loans.xlsx")
		assert.Error(t, err)
	})
}
