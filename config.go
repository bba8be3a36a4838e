package s3kit

import (
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/croxio/s3kit/errors"
	"github.com/croxio/s3kit/s3types"
)

// storeConfigFile is the YAML shape of a store defaults file.
type storeConfigFile struct {
	Bucket       string `yaml:"bucket"`
	KeyPrefix    string `yaml:"key_prefix"`
	Format       string `yaml:"format"`
	Output       string `yaml:"output"`
	Overwrite    *bool  `yaml:"overwrite"`
	TextEncoding string `yaml:"text_encoding"`
	CSVSeparator string `yaml:"csv_separator"`
}

// ConfigFromYAML reads store defaults from a YAML file and returns them as
// store options, so programs can keep bucket and prefix defaults outside
// code:
//
//	bucket: my-bucket
//	key_prefix: reports/
//	format: parquet
//	overwrite: false
func ConfigFromYAML(fsys afero.Fs, path string) ([]s3types.StoreOption, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return nil, errors.NewError("configFromYAML", err)
	}

	var file storeConfigFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, errors.NewError("configFromYAML", err)
	}

	var opts []s3types.StoreOption
	if file.Bucket != "" {
		opts = append(opts, WithBucket(file.Bucket))
	}
	if file.KeyPrefix != "" {
		opts = append(opts, WithKeyPrefix(file.KeyPrefix))
	}
	if file.Format != "" {
		opts = append(opts, WithDefaultFormat(s3types.Format(file.Format)))
	}
	if file.Output != "" {
		opts = append(opts, WithDefaultOutput(s3types.Output(file.Output)))
	}
	if file.Overwrite != nil {
		opts = append(opts, WithOverwrite(*file.Overwrite))
	}
	if file.TextEncoding != "" {
		opts = append(opts, WithTextEncoding(file.TextEncoding))
	}
	if file.CSVSeparator != "" {
		sep := []rune(file.CSVSeparator)
		if len(sep) != 1 {
			return nil, errors.NewError("configFromYAML", errors.ErrInvalidInput).
				WithMessage("csv_separator must be a single character")
		}
		opts = append(opts, WithCSVSeparator(sep[0]))
	}
	return opts, nil
}
