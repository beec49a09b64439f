package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/terracart/terracart/internal/config"
)

const sampleRecordYAML = `
productId: bamboo-toothbrush
carbonFootprint:
  value: 10
  unit: kg
waterUsage:
  value: 20
  unit: L
energyConsumption:
  value: 5
  unit: kWh
recycledPercentage: 80
endOfLifeImpact:
  recyclability: 90
  biodegradability: 70
verificationStatus: verified
verifiedBy: EcoCert
`

// execute runs the root command with args and returns combined output.
// Connection-related environment overrides are cleared so tests see the
// built-in defaults.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	t.Setenv(config.EnvDatabaseDSN, "")
	t.Setenv(config.EnvKafkaBrokers, "")
	t.Setenv(config.EnvRedisAddr, "")

	var buf bytes.Buffer
	root := NewRootCmd("test")
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)

	err := root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestImpactScoreCmd(t *testing.T) {
	t.Run("scores a yaml record", func(t *testing.T) {
		path := writeFile(t, "record.yaml", sampleRecordYAML)

		out, err := execute(t, "impact", "score", "--record", path)
		require.NoError(t, err)
		assert.Contains(t, out, "bamboo-toothbrush")
		assert.Contains(t, out, "Score:        71 / 100")
		assert.Contains(t, out, "verified")
		assert.Contains(t, out, "EcoCert")
	})

	t.Run("scores a json record", func(t *testing.T) {
		path := writeFile(t, "record.json", `{
  "productId": "steel-bottle",
  "carbonFootprint": {"value": 2500, "unit": "g"},
  "waterUsage": {"value": 10, "unit": "L"},
  "energyConsumption": {"value": 1, "unit": "kWh"},
  "recycledPercentage": 50,
  "endOfLifeImpact": {"recyclability": 100, "biodegradability": 0}
}`)

		out, err := execute(t, "impact", "score", "--record", path, "--format", "json")
		require.NoError(t, err)
		assert.Contains(t, out, `"score"`)
		assert.Contains(t, out, `"status"`)
	})

	t.Run("rejects malformed records with the offending field", func(t *testing.T) {
		path := writeFile(t, "record.yaml", `
productId: broken
carbonFootprint:
  value: 10
  unit: kg
waterUsage:
  value: 20
  unit: L
energyConsumption:
  value: 5
  unit: kWh
recycledPercentage: 130
endOfLifeImpact:
  recyclability: 90
  biodegradability: 70
`)

		_, err := execute(t, "impact", "score", "--record", path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "recycledMaterials.percentage")
	})

	t.Run("missing record flag", func(t *testing.T) {
		_, err := execute(t, "impact", "score")
		require.Error(t, err)
	})

	t.Run("unknown format", func(t *testing.T) {
		path := writeFile(t, "record.yaml", sampleRecordYAML)
		_, err := execute(t, "impact", "score", "--record", path, "--format", "xml")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown format")
	})
}

func TestImpactReportCmdRequiresOrderStore(t *testing.T) {
	_, err := execute(t, "impact", "report", "--user", "u1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no order store configured")
}

func TestImpactReportCmdRejectsBadTimeframe(t *testing.T) {
	_, err := execute(t, "impact", "report", "--user", "u1", "--timeframe", "week")
	require.Error(t, err)
}

func TestOrdersWatchCmdRequiresBrokers(t *testing.T) {
	_, err := execute(t, "orders", "watch")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no Kafka brokers configured")
}

func TestRootCmd(t *testing.T) {
	t.Run("help lists subcommands", func(t *testing.T) {
		out, err := execute(t, "--help")
		require.NoError(t, err)
		assert.Contains(t, out, "impact")
		assert.Contains(t, out, "orders")
	})

	t.Run("config flag rejects missing file", func(t *testing.T) {
		_, err := execute(t, "--config", "/nonexistent/config.yaml", "impact", "score", "--record", "r.yaml")
		require.Error(t, err)
	})
}
