package s3kit

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/croxio/s3kit/errors"
	"github.com/croxio/s3kit/internal/testutil"
	"github.com/croxio/s3kit/s3types"
)

func TestNewRejectsAmbiguousCredentials(t *testing.T) {
	tests := []struct {
		name string
		opts []s3types.Option
	}{
		{
			name: "profile and static keys",
			opts: []s3types.Option{
				WithProfile("dev"),
				WithStaticCredentials("AKIA", "secret", ""),
			},
		},
		{
			name: "profile and credentials file",
			opts: []s3types.Option{
				WithProfile("dev"),
				WithSharedCredentialsFile("/tmp/creds"),
			},
		},
		{
			name: "env file and static keys",
			opts: []s3types.Option{
				WithEnvFile("/tmp/.env"),
				WithStaticCredentials("AKIA", "secret", ""),
			},
		},
		{
			name: "three sources",
			opts: []s3types.Option{
				WithProfile("dev"),
				WithSharedCredentialsFile("/tmp/creds"),
				WithEnvFile("/tmp/.env"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			assert.ErrorIs(t, err, errors.ErrAmbiguousCredentials)
		})
	}
}

func TestNewRejectsPartialStaticCredentials(t *testing.T) {
	_, err := New(WithStaticCredentials("AKIA", "", ""))
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)

	_, err = New(WithStaticCredentials("", "secret", ""))
	assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
}

func TestNewSingleSource(t *testing.T) {
	tests := []struct {
		name string
		opts []s3types.Option
	}{
		{name: "no source uses default chain"},
		{name: "profile", opts: []s3types.Option{WithProfile("dev")}},
		{name: "static keys", opts: []s3types.Option{WithStaticCredentials("AKIA", "secret", "token")}},
		{name: "credentials file", opts: []s3types.Option{WithSharedCredentialsFile("/tmp/creds")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client, err := New(tt.opts...)
			require.NoError(t, err)
			assert.NotNil(t, client)
		})
	}
}

func TestNewEnvFile(t *testing.T) {
	dir := t.TempDir()

	t.Run("valid file", func(t *testing.T) {
		path := filepath.Join(dir, "good.env")
		content := "AWS_ACCESS_KEY_ID=AKIAEXAMPLE\n" +
			"AWS_SECRET_ACCESS_KEY=topsecret\n" +
			"AWS_REGION=eu-central-1\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		client, err := New(WithEnvFile(path))
		require.NoError(t, err)
		assert.Equal(t, "AKIAEXAMPLE", client.cfg.AccessKeyID)
		assert.Equal(t, "topsecret", client.cfg.SecretAccessKey)
		assert.Equal(t, "eu-central-1", client.cfg.Region)
	})

	t.Run("explicit region wins over file", func(t *testing.T) {
		path := filepath.Join(dir, "region.env")
		content := "AWS_ACCESS_KEY_ID=AKIAEXAMPLE\n" +
			"AWS_SECRET_ACCESS_KEY=topsecret\n" +
			"AWS_REGION=eu-central-1\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		client, err := New(WithEnvFile(path), WithRegion("us-west-2"))
		require.NoError(t, err)
		assert.Equal(t, "us-west-2", client.cfg.Region)
	})

	t.Run("missing keys", func(t *testing.T) {
		path := filepath.Join(dir, "partial.env")
		require.NoError(t, os.WriteFile(path, []byte("AWS_ACCESS_KEY_ID=AKIA\n"), 0o600))

		_, err := New(WithEnvFile(path))
		assert.ErrorIs(t, err, errors.ErrInvalidCredentials)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := New(WithEnvFile(filepath.Join(dir, "nope.env")))
		assert.Error(t, err)
	})
}

func TestReset(t *testing.T) {
	client, err := New()
	require.NoError(t, err)

	client.s3Client = &testutil.MockS3Client{}
	client.stsClient = &testutil.MockSTSClient{}
	client.Reset()

	client.mu.Lock()
	defer client.mu.Unlock()
	assert.Nil(t, client.s3Client)
	assert.Nil(t, client.stsClient)
	assert.Nil(t, client.awsCfg)
}

func TestStoreDefaults(t *testing.T) {
	client, err := New()
	require.NoError(t, err)

	store := client.Store()
	cfg := store.Config()
	assert.Equal(t, s3types.FormatParquet, cfg.Format)
	assert.Equal(t, s3types.OutputFrame, cfg.Output)
	assert.True(t, cfg.Overwrite)
	assert.Empty(t, cfg.Bucket)
}

func TestStoreConfigure(t *testing.T) {
	client, err := New()
	require.NoError(t, err)

	store := client.Store(WithBucket("my-bucket"))
	store.Configure(
		WithKeyPrefix("reports/"),
		WithDefaultFormat(s3types.FormatParquet),
		WithOverwrite(false),
	)

	cfg := store.Config()
	assert.Equal(t, "my-bucket", cfg.Bucket)
	assert.Equal(t, "reports/", cfg.KeyPrefix)
	assert.Equal(t, s3types.FormatParquet, cfg.Format)
	assert.False(t, cfg.Overwrite)
}

func TestCallOptionsShadowStoredDefaults(t *testing.T) {
	client, err := New()
	require.NoError(t, err)

	store := client.Store(
		WithBucket("default-bucket"),
		WithDefaultFormat(s3types.FormatCSV),
		WithOverwrite(true),
		WithCSVSeparator(';'),
	)

	settings := store.resolve([]s3types.CallOption{
		ForBucket("other-bucket"),
		AsFormat(s3types.FormatParquet),
		Overwrite(false),
	})
	assert.Equal(t, "other-bucket", settings.bucket)
	assert.Equal(t, s3types.FormatParquet, settings.format)
	assert.False(t, settings.overwrite)
	// untouched settings fall through
	assert.Equal(t, ';', settings.codecOpts.Separator)

	// the stored defaults are not mutated
	cfg := store.Config()
	assert.Equal(t, "default-bucket", cfg.Bucket)
	assert.Equal(t, s3types.FormatCSV, cfg.Format)
	assert.True(t, cfg.Overwrite)
}
