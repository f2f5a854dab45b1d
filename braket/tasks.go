package braket

import (
	"context"
	"encoding/json"
	"io"
	"path"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/braket"
	"github.com/aws/aws-sdk-go-v2/service/braket/types"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/teranos/qntx-braket/circuit"
	"github.com/teranos/qntx-braket/errors"
	"github.com/teranos/qntx-braket/internal/util"
	"github.com/teranos/qntx-braket/logger"
	"github.com/teranos/qntx-braket/task"
)

// ResultsObject is the document Braket writes under the task's output
// directory.
const ResultsObject = "results.json"

// RunRequest carries the per-task submission parameters. Empty fields fall
// back to the service configuration.
type RunRequest struct {
	DeviceARN string
	Shots     int
	S3Bucket  string
	S3Prefix  string
}

// Run compiles c and submits it to the device resolved from req.DeviceARN.
func (s *Service) Run(ctx context.Context, c circuit.Circuit, req RunRequest) (task.Submission, error) {
	shots := req.Shots
	if shots <= 0 {
		return task.Submission{}, errors.NewInvalidRequestError("shots must be positive, got %d", shots)
	}
	device := s.ResolveDevice(req.DeviceARN)

	program, err := circuit.CompileProgram(c)
	if err != nil {
		return task.Submission{}, err
	}
	action, err := json.Marshal(program)
	if err != nil {
		return task.Submission{}, errors.MarkCircuitCreation(errors.Wrap(err, "encode program"))
	}

	bucket, prefix := req.S3Bucket, s.prefix
	if req.S3Prefix != "" {
		prefix = strings.Trim(req.S3Prefix, "/")
	}
	if bucket == "" {
		if bucket, err = s.resultsBucket(ctx); err != nil {
			return task.Submission{}, errors.MarkTaskExecution(err)
		}
	}
	if err := s.wait(ctx); err != nil {
		return task.Submission{}, errors.MarkTaskExecution(err)
	}

	out, err := s.clients.Braket.CreateQuantumTask(ctx, &braket.CreateQuantumTaskInput{
		Action:            aws.String(string(action)),
		ClientToken:       aws.String(uuid.NewString()),
		DeviceArn:         aws.String(device),
		OutputS3Bucket:    aws.String(bucket),
		OutputS3KeyPrefix: aws.String(prefix),
		Shots:             aws.Int64(int64(shots)),
	})
	if err != nil {
		return task.Submission{}, errors.MarkTaskExecution(
			errors.WithHint(errors.Wrapf(err, "create quantum task on %s", device), "check the device ARN, region and S3 bucket permissions"))
	}

	sub := task.Submission{
		TaskID:    aws.ToString(out.QuantumTaskArn),
		Status:    task.StatusCreated,
		DeviceARN: device,
		Shots:     shots,
	}
	s.log.Infow("Submitted quantum task",
		logger.FieldTaskID, sub.TaskID,
		logger.FieldDeviceARN, device,
		logger.FieldShots, shots,
		logger.FieldBucket, bucket,
		logger.FieldQubits, c.NumQubits,
		logger.FieldGates, c.NumGates(),
	)
	return sub, nil
}

// GetResult returns the current status of taskID and, once COMPLETED, the
// measurements and counts read from the task's results document.
func (s *Service) GetResult(ctx context.Context, taskID string) (task.Result, error) {
	if strings.TrimSpace(taskID) == "" {
		return task.Result{}, errors.NewInvalidRequestError("task_id is required")
	}
	if err := s.wait(ctx); err != nil {
		return task.Result{}, errors.MarkTaskResult(err)
	}
	out, err := s.clients.Braket.GetQuantumTask(ctx, &braket.GetQuantumTaskInput{QuantumTaskArn: aws.String(taskID)})
	if err != nil {
		return task.Result{}, errors.MarkTaskResult(errors.Wrapf(err, "get quantum task %s", taskID))
	}

	r := task.Result{
		TaskID:   taskID,
		Status:   task.ParseStatus(string(out.Status)),
		Device:   aws.ToString(out.DeviceArn),
		Shots:    int(aws.ToInt64(out.Shots)),
		Metadata: taskMetadata(out),
	}

	if out.CreatedAt != nil && out.EndedAt != nil {
		r.ExecutionTime = util.Ptr(out.EndedAt.Sub(*out.CreatedAt).Seconds())
	}

	if r.Status != task.StatusCompleted {
		return r, nil
	}

	doc, err := s.fetchResults(ctx, aws.ToString(out.OutputS3Bucket), aws.ToString(out.OutputS3Directory))
	if err != nil {
		return task.Result{}, errors.MarkTaskResult(err)
	}
	r.Measurements = doc.Measurements
	switch {
	case len(doc.Measurements) > 0:
		r.Counts = task.CountsFromMeasurements(doc.Measurements)
	case len(doc.MeasurementProbabilities) > 0:
		r.Counts = task.CountsFromProbabilities(doc.MeasurementProbabilities, r.Shots)
	}
	if len(doc.MeasuredQubits) > 0 {
		r.Metadata["measured_qubits"] = doc.MeasuredQubits
	}
	return r, nil
}

func taskMetadata(out *braket.GetQuantumTaskOutput) map[string]any {
	md := map[string]any{
		"quantum_task_arn": aws.ToString(out.QuantumTaskArn),
		"device_arn":       aws.ToString(out.DeviceArn),
		"status":           string(out.Status),
	}
	if v := aws.ToString(out.OutputS3Bucket); v != "" {
		md["output_s3_bucket"] = v
	}
	if v := aws.ToString(out.OutputS3Directory); v != "" {
		md["output_s3_directory"] = v
	}
	if v := aws.ToString(out.FailureReason); v != "" {
		md["failure_reason"] = v
	}
	if out.CreatedAt != nil {
		md["created_at"] = out.CreatedAt.UTC().Format(time.RFC3339)
	}
	if out.EndedAt != nil {
		md["ended_at"] = out.EndedAt.UTC().Format(time.RFC3339)
	}
	return md
}

type resultsDocument struct {
	Measurements             [][]int            `json:"measurements"`
	MeasuredQubits           []int              `json:"measuredQubits"`
	MeasurementProbabilities map[string]float64 `json:"measurementProbabilities"`
}

func (s *Service) fetchResults(ctx context.Context, bucket, dir string) (resultsDocument, error) {
	if bucket == "" {
		return resultsDocument{}, errors.New("completed task has no output location")
	}
	key := path.Join(dir, ResultsObject)
	if err := s.wait(ctx); err != nil {
		return resultsDocument{}, err
	}
	obj, err := s.clients.Objects.GetObject(ctx, &s3.GetObjectInput{Bucket: aws.String(bucket), Key: aws.String(key)})
	if err != nil {
		return resultsDocument{}, errors.Wrapf(err, "fetch s3://%s/%s", bucket, key)
	}
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	if err != nil {
		return resultsDocument{}, errors.Wrapf(err, "read s3://%s/%s", bucket, key)
	}
	var doc resultsDocument
	if err := json.Unmarshal(body, &doc); err != nil {
		return resultsDocument{}, errors.Wrapf(err, "decode s3://%s/%s", bucket, key)
	}
	return doc, nil
}

// CancelResult reports the provider's response to a cancel request.
type CancelResult struct {
	TaskID             string `json:"task_id"`
	CancellationStatus string `json:"cancellation_status"`
}

// Cancel requests cancellation of taskID.
func (s *Service) Cancel(ctx context.Context, taskID string) (CancelResult, error) {
	if strings.TrimSpace(taskID) == "" {
		return CancelResult{}, errors.NewInvalidRequestError("task_id is required")
	}
	if err := s.wait(ctx); err != nil {
		return CancelResult{}, errors.MarkTaskExecution(err)
	}
	out, err := s.clients.Braket.CancelQuantumTask(ctx, &braket.CancelQuantumTaskInput{
		ClientToken:    aws.String(uuid.NewString()),
		QuantumTaskArn: aws.String(taskID),
	})
	if err != nil {
		return CancelResult{}, errors.MarkTaskExecution(errors.Wrapf(err, "cancel quantum task %s", taskID))
	}
	s.log.Infow("Cancellation requested", logger.FieldTaskID, taskID, logger.FieldStatus, out.CancellationStatus)
	return CancelResult{TaskID: taskID, CancellationStatus: string(out.CancellationStatus)}, nil
}

// Search limits.
const (
	DefaultSearchResults = 10
	MaxSearchResults     = 100
)

// SearchQuery filters SearchQuantumTasks. Zero fields are not applied.
type SearchQuery struct {
	DeviceARN  string
	Status     string
	DaysAgo    int
	MaxResults int
}

// TaskSummary is one search hit.
type TaskSummary struct {
	TaskID            string     `json:"task_id"`
	Status            string     `json:"status"`
	DeviceARN         string     `json:"device_arn"`
	Shots             int64      `json:"shots"`
	OutputS3Bucket    string     `json:"output_s3_bucket,omitempty"`
	OutputS3Directory string     `json:"output_s3_directory,omitempty"`
	CreatedAt         *time.Time `json:"created_at,omitempty"`
	EndedAt           *time.Time `json:"ended_at,omitempty"`
}

func (s *Service) searchFilters(q SearchQuery) []types.SearchQuantumTasksFilter {
	filters := []types.SearchQuantumTasksFilter{}
	if q.DeviceARN != "" {
		filters = append(filters, types.SearchQuantumTasksFilter{
			Name:     aws.String("deviceArn"),
			Operator: types.SearchQuantumTasksFilterOperatorEqual,
			Values:   []string{q.DeviceARN},
		})
	}
	if q.Status != "" {
		filters = append(filters, types.SearchQuantumTasksFilter{
			Name:     aws.String("status"),
			Operator: types.SearchQuantumTasksFilterOperatorEqual,
			Values:   []string{strings.ToUpper(q.Status)},
		})
	}
	if q.DaysAgo > 0 {
		since := s.now().AddDate(0, 0, -q.DaysAgo).UTC().Format(time.RFC3339)
		filters = append(filters, types.SearchQuantumTasksFilter{
			Name:     aws.String("createdAt"),
			Operator: types.SearchQuantumTasksFilterOperatorGt,
			Values:   []string{since},
		})
	}
	return filters
}

// Search lists tasks matching q, newest as returned by Braket.
func (s *Service) Search(ctx context.Context, q SearchQuery) ([]TaskSummary, error) {
	limit := q.MaxResults
	if limit <= 0 {
		limit = DefaultSearchResults
	}
	limit = min(limit, MaxSearchResults)

	if err := s.wait(ctx); err != nil {
		return nil, errors.MarkTaskExecution(err)
	}
	out, err := s.clients.Braket.SearchQuantumTasks(ctx, &braket.SearchQuantumTasksInput{
		Filters:    s.searchFilters(q),
		MaxResults: aws.Int32(int32(limit)),
	})
	if err != nil {
		return nil, errors.MarkTaskExecution(errors.Wrap(err, "search quantum tasks"))
	}

	tasks := make([]TaskSummary, 0, len(out.QuantumTasks))
	for _, t := range out.QuantumTasks {
		tasks = append(tasks, TaskSummary{
			TaskID:            aws.ToString(t.QuantumTaskArn),
			Status:            string(t.Status),
			DeviceARN:         aws.ToString(t.DeviceArn),
			Shots:             aws.ToInt64(t.Shots),
			OutputS3Bucket:    aws.ToString(t.OutputS3Bucket),
			OutputS3Directory: aws.ToString(t.OutputS3Directory),
			CreatedAt:         t.CreatedAt,
			EndedAt:           t.EndedAt,
		})
	}
	return tasks, nil
}
