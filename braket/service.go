// Package braket is the service layer over Amazon Braket: task submission,
// status and result retrieval, device discovery, cancellation and search.
//
// The AWS clients sit behind narrow interfaces so the service can be driven
// by fakes in tests. Every API call waits on a shared rate limiter.
package braket

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/braket"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/teranos/qntx-braket/errors"
	"github.com/teranos/qntx-braket/logger"
)

// BraketAPI is the subset of the Braket client the service uses.
type BraketAPI interface {
	CreateQuantumTask(ctx context.Context, in *braket.CreateQuantumTaskInput, optFns ...func(*braket.Options)) (*braket.CreateQuantumTaskOutput, error)
	GetQuantumTask(ctx context.Context, in *braket.GetQuantumTaskInput, optFns ...func(*braket.Options)) (*braket.GetQuantumTaskOutput, error)
	CancelQuantumTask(ctx context.Context, in *braket.CancelQuantumTaskInput, optFns ...func(*braket.Options)) (*braket.CancelQuantumTaskOutput, error)
	SearchQuantumTasks(ctx context.Context, in *braket.SearchQuantumTasksInput, optFns ...func(*braket.Options)) (*braket.SearchQuantumTasksOutput, error)
	SearchDevices(ctx context.Context, in *braket.SearchDevicesInput, optFns ...func(*braket.Options)) (*braket.SearchDevicesOutput, error)
	GetDevice(ctx context.Context, in *braket.GetDeviceInput, optFns ...func(*braket.Options)) (*braket.GetDeviceOutput, error)
}

// ObjectAPI fetches task result documents from S3.
type ObjectAPI interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// IdentityAPI resolves the caller's account for the default results bucket.
type IdentityAPI interface {
	GetCallerIdentity(ctx context.Context, in *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

// Clients bundles the AWS API implementations.
type Clients struct {
	Braket   BraketAPI
	Objects  ObjectAPI
	Identity IdentityAPI
}

// Options configures a Service.
type Options struct {
	Region            string
	DefaultDeviceARN  string
	S3Bucket          string
	S3Prefix          string
	RequestsPerSecond float64
	Burst             int
}

// Service implements the Braket operations. Safe for concurrent use.
type Service struct {
	clients Clients
	region  string
	prefix  string
	limiter *rate.Limiter
	log     *zap.SugaredLogger

	mu            sync.RWMutex
	defaultDevice string

	bucketMu sync.Mutex
	bucket   string

	lookupEnv func(string) (string, bool)
	now       func() time.Time
}

// NewService loads the default AWS configuration for opts.Region and
// returns a Service over real clients.
func NewService(ctx context.Context, opts Options) (*Service, error) {
	var loadOpts []func(*config.LoadOptions) error
	if opts.Region != "" {
		loadOpts = append(loadOpts, config.WithRegion(opts.Region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.WithHint(
			errors.Wrap(errors.ErrServiceUnavailable, "load AWS configuration: "+err.Error()),
			"configure credentials with AWS_PROFILE, AWS_ACCESS_KEY_ID or an instance role",
		)
	}
	opts.Region = cfg.Region

	return New(Clients{
		Braket:   braket.NewFromConfig(cfg),
		Objects:  s3.NewFromConfig(cfg),
		Identity: sts.NewFromConfig(cfg),
	}, opts), nil
}

// New returns a Service over the given clients.
func New(clients Clients, opts Options) *Service {
	rps := opts.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := opts.Burst
	if burst <= 0 {
		burst = 1
	}
	return &Service{
		clients:       clients,
		region:        opts.Region,
		prefix:        strings.Trim(opts.S3Prefix, "/"),
		bucket:        opts.S3Bucket,
		defaultDevice: opts.DefaultDeviceARN,
		limiter:       rate.NewLimiter(rate.Limit(rps), burst),
		log:           logger.ComponentLogger("braket"),
		lookupEnv:     os.LookupEnv,
		now:           time.Now,
	}
}

// Region returns the AWS region the service talks to.
func (s *Service) Region() string { return s.region }

// DefaultDevice returns the configured default device ARN.
func (s *Service) DefaultDevice() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.defaultDevice
}

// SetDefaultDevice replaces the configured default device ARN.
func (s *Service) SetDefaultDevice(arn string) {
	s.mu.Lock()
	s.defaultDevice = arn
	s.mu.Unlock()
}

// SetRateLimit changes the API call rate without dropping waiters.
func (s *Service) SetRateLimit(rps float64, burst int) {
	if rps > 0 {
		s.limiter.SetLimit(rate.Limit(rps))
	}
	if burst > 0 {
		s.limiter.SetBurst(burst)
	}
}

// ResolveDevice applies the device precedence to an explicit argument.
func (s *Service) ResolveDevice(explicit string) string {
	return ResolveDeviceARN(explicit, s.lookupEnv, s.DefaultDevice())
}

func (s *Service) wait(ctx context.Context) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return errors.Wrap(errors.ErrTimeout, "waiting for Braket rate limit: "+err.Error())
	}
	return nil
}

// resultsBucket returns the configured bucket, or derives and caches the
// Braket default amazon-braket-<region>-<account>.
func (s *Service) resultsBucket(ctx context.Context) (string, error) {
	s.bucketMu.Lock()
	defer s.bucketMu.Unlock()
	if s.bucket != "" {
		return s.bucket, nil
	}
	if s.clients.Identity == nil {
		return "", errors.WithHint(errors.New("no S3 bucket configured"), "set braket.s3_bucket")
	}
	out, err := s.clients.Identity.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return "", errors.WithHint(errors.Wrap(err, "resolve AWS account for results bucket"), "set braket.s3_bucket explicitly")
	}
	s.bucket = fmt.Sprintf("amazon-braket-%s-%s", s.region, aws.ToString(out.Account))
	s.log.Infow("Derived results bucket", logger.FieldBucket, s.bucket)
	return s.bucket, nil
}
