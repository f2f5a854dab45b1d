package braket

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/braket"
	"github.com/aws/aws-sdk-go-v2/service/braket/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/teranos/qntx-braket/circuit"
	"github.com/teranos/qntx-braket/errors"
	"github.com/teranos/qntx-braket/task"
)

func TestRunSubmitsProgram(t *testing.T) {
	fb := &fakeBraket{}
	id := &fakeIdentity{}
	s := newTestService(fb, nil, id, Options{S3Prefix: "/braket-mcp/", DefaultDeviceARN: DefaultDeviceARN})

	sub, err := s.Run(context.Background(), circuit.BellPair(), RunRequest{Shots: 500})
	require.NoError(t, err)
	assert.Equal(t, task.Submission{
		TaskID:    "arn:aws:braket:us-east-1:123456789012:quantum-task/t-1",
		Status:    task.StatusCreated,
		DeviceARN: DefaultDeviceARN,
		Shots:     500,
	}, sub)

	require.Len(t, fb.created, 1)
	in := fb.created[0]
	assert.Equal(t, "amazon-braket-us-east-1-123456789012", aws.ToString(in.OutputS3Bucket))
	assert.Equal(t, "braket-mcp", aws.ToString(in.OutputS3KeyPrefix))
	assert.Equal(t, int64(500), aws.ToInt64(in.Shots))
	assert.Len(t, aws.ToString(in.ClientToken), 36)

	var program circuit.Program
	require.NoError(t, json.Unmarshal([]byte(aws.ToString(in.Action)), &program))
	assert.Equal(t, "braket.ir.openqasm.program", program.Header.Name)
	assert.Contains(t, program.Source, "cnot q[0], q[1];")

	_, err = s.Run(context.Background(), circuit.BellPair(), RunRequest{Shots: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, id.calls, "derived bucket is cached")
	assert.NotEqual(t, aws.ToString(fb.created[0].ClientToken), aws.ToString(fb.created[1].ClientToken))
}

func TestRunConfiguredBucketSkipsIdentity(t *testing.T) {
	fb := &fakeBraket{}
	id := &fakeIdentity{}
	s := newTestService(fb, nil, id, Options{S3Bucket: "my-results"})

	_, err := s.Run(context.Background(), circuit.BellPair(), RunRequest{DeviceARN: "arn:explicit", Shots: 1})
	require.NoError(t, err)
	assert.Equal(t, 0, id.calls)
	assert.Equal(t, "my-results", aws.ToString(fb.created[0].OutputS3Bucket))
	assert.Equal(t, "arn:explicit", aws.ToString(fb.created[0].DeviceArn))
}

func TestRunErrors(t *testing.T) {
	ctx := context.Background()

	s := newTestService(&fakeBraket{}, nil, &fakeIdentity{}, Options{})
	_, err := s.Run(ctx, circuit.BellPair(), RunRequest{})
	assert.True(t, errors.IsInvalidRequestError(err))

	bad := circuit.New(2, circuit.Gate{Name: "warp", Qubits: []int{0}})
	_, err = s.Run(ctx, bad, RunRequest{Shots: 100})
	assert.True(t, errors.Is(err, errors.ErrCircuitCreation))

	s = newTestService(&fakeBraket{}, nil, &fakeIdentity{err: errors.New("no credentials")}, Options{})
	_, err = s.Run(ctx, circuit.BellPair(), RunRequest{Shots: 100})
	assert.True(t, errors.Is(err, errors.ErrTaskExecution))

	s = newTestService(&fakeBraket{err: errors.New("ValidationException")}, nil, &fakeIdentity{}, Options{})
	_, err = s.Run(ctx, circuit.BellPair(), RunRequest{Shots: 100})
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTaskExecution))
	assert.Contains(t, err.Error(), "ValidationException")
}

func TestRunPerRequestLocation(t *testing.T) {
	fb := &fakeBraket{}
	id := &fakeIdentity{}
	s := newTestService(fb, nil, id, Options{S3Prefix: "configured"})

	_, err := s.Run(context.Background(), circuit.BellPair(), RunRequest{Shots: 5, S3Bucket: "adhoc", S3Prefix: "/runs/today/"})
	require.NoError(t, err)
	assert.Equal(t, 0, id.calls)
	assert.Equal(t, "adhoc", aws.ToString(fb.created[0].OutputS3Bucket))
	assert.Equal(t, "runs/today", aws.ToString(fb.created[0].OutputS3KeyPrefix))
}

func completedTask() *braket.GetQuantumTaskOutput {
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	ended := created.Add(2500 * time.Millisecond)
	return &braket.GetQuantumTaskOutput{
		QuantumTaskArn:    aws.String("task-arn"),
		Status:            types.QuantumTaskStatusCompleted,
		DeviceArn:         aws.String(DefaultDeviceARN),
		Shots:             aws.Int64(4),
		OutputS3Bucket:    aws.String("amazon-braket-us-east-1-123456789012"),
		OutputS3Directory: aws.String("braket-mcp/task-arn"),
		CreatedAt:         &created,
		EndedAt:           &ended,
	}
}

func TestGetResultCompletedWithMeasurements(t *testing.T) {
	objects := &fakeObjects{body: `{"measurements": [[0,0],[1,1],[1,1],[0,0]], "measuredQubits": [0,1]}`}
	s := newTestService(&fakeBraket{getOut: completedTask()}, objects, nil, Options{})

	r, err := s.GetResult(context.Background(), "task-arn")
	require.NoError(t, err)
	assert.Equal(t, task.StatusCompleted, r.Status)
	assert.Equal(t, map[string]int{"00": 2, "11": 2}, r.Counts)
	assert.Len(t, r.Measurements, 4)
	assert.Equal(t, 4, r.Shots)
	require.NotNil(t, r.ExecutionTime)
	assert.InDelta(t, 2.5, *r.ExecutionTime, 1e-9)
	assert.Equal(t, DefaultDeviceARN, r.Device)
	assert.Equal(t, []int{0, 1}, r.Metadata["measured_qubits"])

	assert.Equal(t, "amazon-braket-us-east-1-123456789012", objects.bucket)
	assert.Equal(t, "braket-mcp/task-arn/results.json", objects.key)
}

func TestGetResultCompletedWithProbabilities(t *testing.T) {
	out := completedTask()
	out.Shots = aws.Int64(1000)
	objects := &fakeObjects{body: `{"measurementProbabilities": {"00": 0.5, "11": 0.5}}`}
	s := newTestService(&fakeBraket{getOut: out}, objects, nil, Options{})

	r, err := s.GetResult(context.Background(), "task-arn")
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"00": 500, "11": 500}, r.Counts)
	assert.Empty(t, r.Measurements)
}

func TestGetResultPendingSkipsS3(t *testing.T) {
	out := completedTask()
	out.Status = types.QuantumTaskStatusQueued
	out.EndedAt = nil
	objects := &fakeObjects{}
	s := newTestService(&fakeBraket{getOut: out}, objects, nil, Options{})

	r, err := s.GetResult(context.Background(), "task-arn")
	require.NoError(t, err)
	assert.Equal(t, task.StatusQueued, r.Status)
	assert.Nil(t, r.Counts)
	assert.Nil(t, r.ExecutionTime)
	assert.Empty(t, objects.key)
}

func TestGetResultUnknownStatusIsFailed(t *testing.T) {
	out := completedTask()
	out.Status = types.QuantumTaskStatus("EXPLODED")
	out.FailureReason = aws.String("hardware fault")
	s := newTestService(&fakeBraket{getOut: out}, &fakeObjects{}, nil, Options{})

	r, err := s.GetResult(context.Background(), "task-arn")
	require.NoError(t, err)
	assert.Equal(t, task.StatusFailed, r.Status)
	assert.Equal(t, "hardware fault", r.Metadata["failure_reason"])
}

func TestGetResultErrorsAreTaskResultErrors(t *testing.T) {
	ctx := context.Background()

	s := newTestService(&fakeBraket{err: errors.New("ResourceNotFoundException")}, nil, nil, Options{})
	_, err := s.GetResult(ctx, "task-arn")
	assert.True(t, errors.Is(err, errors.ErrTaskResult))

	s = newTestService(&fakeBraket{getOut: completedTask()}, &fakeObjects{err: errors.New("NoSuchKey")}, nil, Options{})
	_, err = s.GetResult(ctx, "task-arn")
	assert.True(t, errors.Is(err, errors.ErrTaskResult))
	assert.Contains(t, err.Error(), "results.json")

	s = newTestService(&fakeBraket{getOut: completedTask()}, &fakeObjects{body: "not json"}, nil, Options{})
	_, err = s.GetResult(ctx, "task-arn")
	assert.True(t, errors.Is(err, errors.ErrTaskResult))

	_, err = s.GetResult(ctx, "")
	assert.True(t, errors.IsInvalidRequestError(err))
}

func TestCancel(t *testing.T) {
	fb := &fakeBraket{cancelOut: &braket.CancelQuantumTaskOutput{
		QuantumTaskArn:     aws.String("task-arn"),
		CancellationStatus: types.CancellationStatusCancelling,
	}}
	s := newTestService(fb, nil, nil, Options{})

	res, err := s.Cancel(context.Background(), "task-arn")
	require.NoError(t, err)
	assert.Equal(t, CancelResult{TaskID: "task-arn", CancellationStatus: "CANCELLING"}, res)
	require.Len(t, fb.cancelled, 1)
	assert.NotEmpty(t, aws.ToString(fb.cancelled[0].ClientToken))

	s = newTestService(&fakeBraket{err: errors.New("ConflictException")}, nil, nil, Options{})
	_, err = s.Cancel(context.Background(), "task-arn")
	assert.True(t, errors.Is(err, errors.ErrTaskExecution))
}

func TestSearchFilters(t *testing.T) {
	created := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	fb := &fakeBraket{searchOut: &braket.SearchQuantumTasksOutput{
		QuantumTasks: []types.QuantumTaskSummary{{
			QuantumTaskArn: aws.String("task-arn"),
			Status:         types.QuantumTaskStatusCompleted,
			DeviceArn:      aws.String(DefaultDeviceARN),
			Shots:          aws.Int64(100),
			CreatedAt:      &created,
		}},
	}}
	s := newTestService(fb, nil, nil, Options{})
	s.now = func() time.Time { return time.Date(2026, 5, 8, 9, 30, 0, 0, time.UTC) }

	tasks, err := s.Search(context.Background(), SearchQuery{
		DeviceARN:  DefaultDeviceARN,
		Status:     "completed",
		DaysAgo:    7,
		MaxResults: 500,
	})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "task-arn", tasks[0].TaskID)
	assert.Equal(t, int64(100), tasks[0].Shots)

	in := fb.searched[0]
	assert.Equal(t, int32(MaxSearchResults), aws.ToInt32(in.MaxResults))
	require.Len(t, in.Filters, 3)
	assert.Equal(t, "deviceArn", aws.ToString(in.Filters[0].Name))
	assert.Equal(t, types.SearchQuantumTasksFilterOperatorEqual, in.Filters[0].Operator)
	assert.Equal(t, []string{"COMPLETED"}, in.Filters[1].Values)
	assert.Equal(t, "createdAt", aws.ToString(in.Filters[2].Name))
	assert.Equal(t, types.SearchQuantumTasksFilterOperatorGt, in.Filters[2].Operator)
	assert.Equal(t, []string{"2026-05-01T09:30:00Z"}, in.Filters[2].Values)
}

func TestSearchDefaults(t *testing.T) {
	fb := &fakeBraket{searchOut: &braket.SearchQuantumTasksOutput{}}
	s := newTestService(fb, nil, nil, Options{})

	tasks, err := s.Search(context.Background(), SearchQuery{})
	require.NoError(t, err)
	assert.Empty(t, tasks)
	assert.NotNil(t, tasks)
	assert.Equal(t, int32(DefaultSearchResults), aws.ToInt32(fb.searched[0].MaxResults))
	assert.Empty(t, fb.searched[0].Filters)
}

func TestRateLimitHonoursContext(t *testing.T) {
	s := newTestService(&fakeBraket{}, nil, nil, Options{RequestsPerSecond: 0.001, Burst: 1})
	ctx, cancel := context.WithCancel(context.Background())

	_, err := s.ListDevices(ctx)
	require.NoError(t, err, "first call uses the burst token")

	cancel()
	_, err = s.ListDevices(ctx)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrTimeout))
}
