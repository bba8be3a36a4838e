package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForKey(t *testing.T) {
	tests := []struct {
		name        string
		key         string
		wantCodec   string
		wantGzipped bool
		wantOK      bool
	}{
		{name: "csv", key: "data/report.csv", wantCodec: "csv", wantOK: true},
		{name: "parquet", key: "report.parquet", wantCodec: "parquet", wantOK: true},
		{name: "xlsx", key: "report.xlsx", wantCodec: "excel", wantOK: true},
		{name: "legacy xls", key: "report.xls", wantCodec: "excel", wantOK: true},
		{name: "uppercase extension", key: "REPORT.CSV", wantCodec: "csv", wantOK: true},
		{name: "gzipped csv", key: "report.csv.gz", wantCodec: "csv", wantGzipped: true, wantOK: true},
		{name: "bare gz", key: "report.gz", wantGzipped: true, wantOK: false},
		{name: "unknown extension", key: "report.txt", wantOK: false},
		{name: "no extension", key: "report", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, gzipped, ok := ForKey(tt.key)
			assert.Equal(t, tt.wantGzipped, gzipped)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				require.NotNil(t, c)
				assert.Equal(t, tt.wantCodec, c.Name())
			}
		})
	}
}

func TestIsJSONKey(t *testing.T) {
	assert.True(t, IsJSONKey("config.json"))
	assert.True(t, IsJSONKey("a/b/config.JSON"))
	assert.True(t, IsJSONKey("config.json.gz"))
	assert.False(t, IsJSONKey("config.csv"))
	assert.False(t, IsJSONKey("json"))
}

func TestGzipRoundTrip(t *testing.T) {
	payload := []byte("name,count\na,1\nb,2\n")

	compressed, err := Gzip(payload)
	require.NoError(t, err)
	assert.NotEqual(t, payload, compressed)

	restored, err := Gunzip(compressed)
	require.NoError(t, err)
	assert.Equal(t, payload, restored)
}

func TestGunzipRejectsGarbage(t *testing.T) {
	_, err := Gunzip([]byte("not gzip data"))
	assert.Error(t, err)
}
