package s3kit

import (
	"context"
	"log/slog"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/joho/godotenv"
	"github.com/spf13/afero"

	"github.com/croxio/s3kit/errors"
	"github.com/croxio/s3kit/internal/s3api"
	"github.com/croxio/s3kit/s3types"
)

// Client represents an authenticated session. The credential source is
// chosen once at construction; the AWS configuration and the derived SDK
// clients are built lazily on first use and cached until Reset.
type Client struct {
	cfg    s3types.ClientConfig
	logger *slog.Logger
	fs     afero.Fs

	// mu protects the cached SDK state below
	mu        sync.Mutex
	awsCfg    *aws.Config
	s3Client  s3api.S3API
	stsClient s3api.STSAPI
}

// New creates a client with the provided options. At most one credential
// source (profile, static keys, shared-credentials file, env file) may be
// supplied; none means the SDK default chain.
//
// Example:
//
//	client, err := s3kit.New(
//	    s3kit.WithProfile("analytics"),
//	    s3kit.WithRegion("eu-west-1"),
//	)
func New(opts ...s3types.Option) (*Client, error) {
	cfg := s3types.ClientConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	sources := 0
	if cfg.Profile != "" {
		sources++
	}
	if cfg.AccessKeyID != "" || cfg.SecretAccessKey != "" {
		sources++
	}
	if cfg.CredentialsFile != "" {
		sources++
	}
	if cfg.EnvFile != "" {
		sources++
	}
	if sources > 1 {
		return nil, errors.NewError("new", errors.ErrAmbiguousCredentials)
	}

	if (cfg.AccessKeyID != "") != (cfg.SecretAccessKey != "") {
		return nil, errors.NewError("new", errors.ErrInvalidCredentials).
			WithMessage("access key ID and secret access key must be supplied together")
	}

	if cfg.EnvFile != "" {
		if err := loadEnvFile(&cfg); err != nil {
			return nil, err
		}
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	fsys := cfg.Filesystem
	if fsys == nil {
		fsys = afero.NewOsFs()
	}

	return &Client{
		cfg:    cfg,
		logger: logger,
		fs:     fsys,
	}, nil
}

// NewWithClients creates a client backed by custom SDK implementations.
// This is primarily used for testing with mocks.
func NewWithClients(s3Client s3api.S3API, stsClient s3api.STSAPI) *Client {
	return &Client{
		logger:    slog.New(slog.DiscardHandler),
		fs:        afero.NewOsFs(),
		s3Client:  s3Client,
		stsClient: stsClient,
	}
}

// loadEnvFile resolves the env-file credential source into static keys.
func loadEnvFile(cfg *s3types.ClientConfig) error {
	vars, err := godotenv.Read(cfg.EnvFile)
	if err != nil {
		return errors.NewError("new", err).WithMessage("read env file")
	}

	cfg.AccessKeyID = vars["AWS_ACCESS_KEY_ID"]
	cfg.SecretAccessKey = vars["AWS_SECRET_ACCESS_KEY"]
	cfg.SessionToken = vars["AWS_SESSION_TOKEN"]
	if cfg.AccessKeyID == "" || cfg.SecretAccessKey == "" {
		return errors.NewError("new", errors.ErrInvalidCredentials).
			WithMessage("env file must define AWS_ACCESS_KEY_ID and AWS_SECRET_ACCESS_KEY")
	}
	if cfg.Region == "" {
		cfg.Region = vars["AWS_REGION"]
	}
	return nil
}

// Reset drops the cached SDK clients. The next operation rebuilds them from
// the stored credential selection.
func (c *Client) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.awsCfg = nil
	c.s3Client = nil
	c.stsClient = nil
}

// Store returns the storage operations facade bound to this client, with
// the given defaults applied.
func (c *Client) Store(opts ...s3types.StoreOption) *Store {
	config := s3types.StoreConfig{
		Format:    s3types.FormatParquet,
		Output:    s3types.OutputFrame,
		Overwrite: true,
	}
	for _, opt := range opts {
		opt(&config)
	}
	return &Store{client: c, config: config}
}

// s3API returns the cached S3 client, building it on first use.
func (c *Client) s3API(ctx context.Context) (s3api.S3API, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.s3Client != nil {
		return c.s3Client, nil
	}

	cfg, err := c.loadConfigLocked(ctx)
	if err != nil {
		return nil, err
	}

	var s3Opts []func(*s3.Options)
	if c.cfg.Endpoint != "" {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(c.cfg.Endpoint)
		})
	}
	if c.cfg.ForcePathStyle {
		s3Opts = append(s3Opts, func(o *s3.Options) {
			o.UsePathStyle = true
		})
	}

	c.s3Client = s3.NewFromConfig(cfg, s3Opts...)
	return c.s3Client, nil
}

// stsAPI returns the cached STS client, building it on first use.
func (c *Client) stsAPI(ctx context.Context) (s3api.STSAPI, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stsClient != nil {
		return c.stsClient, nil
	}

	cfg, err := c.loadConfigLocked(ctx)
	if err != nil {
		return nil, err
	}

	c.stsClient = sts.NewFromConfig(cfg)
	return c.stsClient, nil
}

// loadConfigLocked resolves the AWS configuration from the selected
// credential source. Callers must hold c.mu.
func (c *Client) loadConfigLocked(ctx context.Context) (aws.Config, error) {
	if c.awsCfg != nil {
		return *c.awsCfg, nil
	}

	if c.cfg.CustomAWSConfig != nil {
		c.awsCfg = c.cfg.CustomAWSConfig
		return *c.awsCfg, nil
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if c.cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(c.cfg.Region))
	}

	switch {
	case c.cfg.Profile != "":
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(c.cfg.Profile))
	case c.cfg.AccessKeyID != "":
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(
				c.cfg.AccessKeyID, c.cfg.SecretAccessKey, c.cfg.SessionToken,
			),
		))
	case c.cfg.CredentialsFile != "":
		loadOpts = append(loadOpts, awsconfig.WithSharedCredentialsFiles(
			[]string{c.cfg.CredentialsFile},
		))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, errors.NewError("loadConfig", err)
	}

	c.awsCfg = &cfg
	c.logger.Info("aws configuration loaded", "region", cfg.Region)
	return cfg, nil
}
