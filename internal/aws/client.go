package aws

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/aws/smithy-go"
)

// DefaultRegion is used when neither the config nor the profile names a region.
const DefaultRegion = "us-east-1"

type Error string

const (
	ErrNoCredentials      = Error("no AWS credentials found")
	ErrExpiredCredentials = Error("AWS credentials have expired")
	ErrNoConnection       = Error("no connection to AWS")
	ErrInvalidProfile     = Error("invalid AWS profile")
	ErrInvalidRegion      = Error("invalid AWS region")
	ErrNotFound           = Error("AWS object not found")
)

func (e Error) Error() string {
	return string(e)
}

// Connection provides the AWS clients used by the S3 row sources and stores.
type Connection interface {
	Config() *ClientConfig
	CheckConnectivity() bool
	SwitchProfile(profile string) error
	SwitchRegion(region string) error
	ActiveProfile() string
	ActiveRegion() string
	AccountID() string
	S3() *s3.Client
	S3Regional(region string) *s3.Client
	STS() *sts.Client
	Context() (context.Context, context.CancelFunc)
}

type ClientConfig struct {
	Profile  string
	Region   string
	Endpoint string
	Timeout  time.Duration
}

type serviceClients struct {
	s3Client  *s3.Client
	stsClient *sts.Client
	awsConfig aws.Config
	createdAt time.Time
}

// Profiles reports the locally configured AWS profiles.
type Profiles interface {
	HasProfile(name string) bool
	ProfileRegion(name string) string
}

type APIClient struct {
	config    *ClientConfig
	profiles  Profiles
	clients   map[string]*serviceClients
	accountID string
	mx        sync.RWMutex
}

// NewAPIClient creates a new APIClient. The region defaults to the profile
// region, then DefaultRegion.
func NewAPIClient(profiles Profiles, cfg *ClientConfig) (*APIClient, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.Region == "" && profiles != nil {
		cfg.Region = profiles.ProfileRegion(cfg.Profile)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	return &APIClient{
		config:   cfg,
		profiles: profiles,
		clients:  make(map[string]*serviceClients),
	}, nil
}

// InitConnection creates a client and verifies its credentials.
func InitConnection(profiles Profiles, cfg *ClientConfig) (*APIClient, error) {
	client, err := NewAPIClient(profiles, cfg)
	if err != nil {
		return nil, err
	}
	if !client.CheckConnectivity() {
		return nil, ErrNoConnection
	}

	return client, nil
}

// Config returns the client configuration.
func (c *APIClient) Config() *ClientConfig {
	c.mx.RLock()
	defer c.mx.RUnlock()
	cfg := *c.config
	return &cfg
}

// Context returns a context bounded by the client timeout.
func (c *APIClient) Context() (context.Context, context.CancelFunc) {
	c.mx.RLock()
	timeout := c.config.Timeout
	c.mx.RUnlock()

	if timeout > 0 {
		return context.WithTimeout(context.Background(), timeout)
	}
	return context.WithCancel(context.Background())
}

// CheckConnectivity verifies the credentials by calling STS GetCallerIdentity.
// It caches the account ID on success.
func (c *APIClient) CheckConnectivity() bool {
	ctx, cancel := c.Context()
	defer cancel()

	ok, account := false, ""
	if client := c.STS(); client != nil {
		if res, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{}); err == nil {
			ok, account = true, StringValue(res.Account)
		}
	}

	c.mx.Lock()
	defer c.mx.Unlock()
	c.accountID = account

	return ok
}

// SwitchProfile switches to a new AWS profile and drops the cached clients.
func (c *APIClient) SwitchProfile(profile string) error {
	if c.profiles != nil && !c.profiles.HasProfile(profile) {
		return fmt.Errorf("%w: %s", ErrInvalidProfile, profile)
	}

	c.mx.Lock()
	defer c.mx.Unlock()

	c.clients = make(map[string]*serviceClients)
	c.config.Profile = profile
	c.accountID = ""

	return nil
}

// SwitchRegion switches to a new AWS region.
func (c *APIClient) SwitchRegion(region string) error {
	if region == "" {
		return fmt.Errorf("%w: region cannot be empty", ErrInvalidRegion)
	}

	c.mx.Lock()
	defer c.mx.Unlock()
	c.config.Region = region

	return nil
}

// ActiveProfile returns the currently active AWS profile.
func (c *APIClient) ActiveProfile() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config.Profile
}

// ActiveRegion returns the currently active AWS region.
func (c *APIClient) ActiveRegion() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.config.Region
}

// AccountID returns the cached AWS account ID.
func (c *APIClient) AccountID() string {
	c.mx.RLock()
	defer c.mx.RUnlock()
	return c.accountID
}

// S3 returns an S3 client for the active region.
func (c *APIClient) S3() *s3.Client {
	return c.S3Regional(c.ActiveRegion())
}

// S3Regional returns an S3 client for a specific region.
func (c *APIClient) S3Regional(region string) *s3.Client {
	if region == "" {
		region = DefaultRegion
	}
	clients, err := c.getClients(region)
	if err != nil {
		return nil
	}
	return clients.s3Client
}

// STS returns an STS client for the active region.
func (c *APIClient) STS() *sts.Client {
	clients, err := c.getClients(c.ActiveRegion())
	if err != nil {
		return nil
	}
	return clients.stsClient
}

// getClients retrieves or creates service clients for the specified region.
func (c *APIClient) getClients(region string) (*serviceClients, error) {
	c.mx.RLock()
	key := c.config.Profile + ":" + region
	if clients, ok := c.clients[key]; ok {
		c.mx.RUnlock()
		return clients, nil
	}
	c.mx.RUnlock()

	c.mx.Lock()
	defer c.mx.Unlock()

	key = c.config.Profile + ":" + region
	if clients, ok := c.clients[key]; ok {
		return clients, nil
	}

	clients, err := c.createClients(c.config.Profile, region)
	if err != nil {
		return nil, err
	}
	c.clients[key] = clients
	return clients, nil
}

func (c *APIClient) createClients(profile, region string) (*serviceClients, error) {
	ctx := context.Background()
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	opts := []func(*config.LoadOptions) error{config.WithRegion(region)}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, WrapAWSError(err, "load AWS config")
	}

	endpoint := c.config.Endpoint
	return &serviceClients{
		awsConfig: cfg,
		createdAt: time.Now(),
		s3Client: s3.NewFromConfig(cfg, func(o *s3.Options) {
			if endpoint != "" {
				o.BaseEndpoint = aws.String(endpoint)
				o.UsePathStyle = true
			}
		}),
		stsClient: sts.NewFromConfig(cfg),
	}, nil
}

// WrapAWSError wraps AWS SDK errors with additional context.
func WrapAWSError(err error, operation string) error {
	if err == nil {
		return nil
	}

	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound", "NoSuchBucket":
			return fmt.Errorf("%w: %s", ErrNotFound, operation)
		case "AccessDenied", "AccessDeniedException":
			return fmt.Errorf("access denied for %s: %w", operation, err)
		case "ExpiredToken", "ExpiredTokenException":
			return fmt.Errorf("%w: %s", ErrExpiredCredentials, operation)
		case "ThrottlingException", "SlowDown":
			return fmt.Errorf("rate limited during %s: %w", operation, err)
		case "InvalidClientTokenId":
			return fmt.Errorf("%w: %s", ErrNoCredentials, operation)
		default:
			return fmt.Errorf("%s failed: %s (%s)", operation, apiErr.ErrorMessage(), apiErr.ErrorCode())
		}
	}

	return fmt.Errorf("%s failed: %w", operation, err)
}
