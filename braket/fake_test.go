package braket

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/braket"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

type fakeBraket struct {
	mu sync.Mutex

	created   []*braket.CreateQuantumTaskInput
	cancelled []*braket.CancelQuantumTaskInput
	searched  []*braket.SearchQuantumTasksInput
	devSearch []*braket.SearchDevicesInput

	createOut   *braket.CreateQuantumTaskOutput
	getOut      *braket.GetQuantumTaskOutput
	cancelOut   *braket.CancelQuantumTaskOutput
	searchOut   *braket.SearchQuantumTasksOutput
	devicePages []*braket.SearchDevicesOutput
	deviceOut   *braket.GetDeviceOutput

	err error
}

func (f *fakeBraket) CreateQuantumTask(_ context.Context, in *braket.CreateQuantumTaskInput, _ ...func(*braket.Options)) (*braket.CreateQuantumTaskOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, in)
	if f.err != nil {
		return nil, f.err
	}
	if f.createOut != nil {
		return f.createOut, nil
	}
	return &braket.CreateQuantumTaskOutput{QuantumTaskArn: aws.String("arn:aws:braket:us-east-1:123456789012:quantum-task/t-1")}, nil
}

func (f *fakeBraket) GetQuantumTask(_ context.Context, _ *braket.GetQuantumTaskInput, _ ...func(*braket.Options)) (*braket.GetQuantumTaskOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.getOut, nil
}

func (f *fakeBraket) CancelQuantumTask(_ context.Context, in *braket.CancelQuantumTaskInput, _ ...func(*braket.Options)) (*braket.CancelQuantumTaskOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancelled = append(f.cancelled, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.cancelOut, nil
}

func (f *fakeBraket) SearchQuantumTasks(_ context.Context, in *braket.SearchQuantumTasksInput, _ ...func(*braket.Options)) (*braket.SearchQuantumTasksOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searched = append(f.searched, in)
	if f.err != nil {
		return nil, f.err
	}
	return f.searchOut, nil
}

func (f *fakeBraket) SearchDevices(_ context.Context, in *braket.SearchDevicesInput, _ ...func(*braket.Options)) (*braket.SearchDevicesOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.devSearch = append(f.devSearch, in)
	if f.err != nil {
		return nil, f.err
	}
	if len(f.devicePages) == 0 {
		return &braket.SearchDevicesOutput{}, nil
	}
	page := f.devicePages[0]
	f.devicePages = f.devicePages[1:]
	return page, nil
}

func (f *fakeBraket) GetDevice(_ context.Context, _ *braket.GetDeviceInput, _ ...func(*braket.Options)) (*braket.GetDeviceOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.deviceOut, nil
}

type fakeObjects struct {
	bucket, key string
	body        string
	err         error
}

func (f *fakeObjects) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.bucket = aws.ToString(in.Bucket)
	f.key = aws.ToString(in.Key)
	if f.err != nil {
		return nil, f.err
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(f.body))}, nil
}

type fakeIdentity struct {
	calls int
	err   error
}

func (f *fakeIdentity) GetCallerIdentity(_ context.Context, _ *sts.GetCallerIdentityInput, _ ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &sts.GetCallerIdentityOutput{Account: aws.String("123456789012")}, nil
}

func noEnv(string) (string, bool) { return "", false }

func newTestService(b *fakeBraket, o *fakeObjects, id *fakeIdentity, opts Options) *Service {
	if opts.Region == "" {
		opts.Region = "us-east-1"
	}
	if opts.RequestsPerSecond == 0 {
		opts.RequestsPerSecond = 1000
		opts.Burst = 100
	}
	s := New(Clients{Braket: b, Objects: o, Identity: id}, opts)
	s.lookupEnv = noEnv
	return s
}
