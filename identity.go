package s3kit

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/croxio/s3kit/errors"
	"github.com/croxio/s3kit/s3types"
)

// Identity returns the caller behind the active credentials via STS
// GetCallerIdentity. Useful as a cheap check that the selected credential
// source actually authenticates.
func (c *Client) Identity(ctx context.Context) (*s3types.Identity, error) {
	api, err := c.stsAPI(ctx)
	if err != nil {
		return nil, err
	}

	output, err := api.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return nil, errors.NewError("identity", err)
	}

	identity := &s3types.Identity{
		Account: aws.ToString(output.Account),
		ARN:     aws.ToString(output.Arn),
		UserID:  aws.ToString(output.UserId),
	}
	c.logger.Info("caller identity",
		"account", identity.Account,
		"arn", identity.ARN,
		"user_id", identity.UserID,
	)
	return identity, nil
}
