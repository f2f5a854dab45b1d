package braket

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/braket"
	"github.com/aws/aws-sdk-go-v2/service/braket/types"

	"github.com/teranos/qntx-braket/errors"
	"github.com/teranos/qntx-braket/logger"
)

const (
	// DefaultDeviceARN is the on-demand state-vector simulator.
	DefaultDeviceARN = "arn:aws:braket:::device/quantum-simulator/amazon/sv1"

	// EnvDeviceARN overrides the configured default device.
	EnvDeviceARN = "BRAKET_DEFAULT_DEVICE_ARN"
)

// SupportedRegions are the regions Braket is offered in.
var SupportedRegions = []string{"us-east-1", "us-west-1", "us-west-2", "eu-west-2", "ap-southeast-1"}

// RegionSupported reports whether region hosts Braket.
func RegionSupported(region string) bool {
	return slices.Contains(SupportedRegions, region)
}

// ResolveDeviceARN picks the device for a task. Precedence: explicit
// argument, then the EnvDeviceARN environment variable, then configured,
// then DefaultDeviceARN. Blank values count as absent.
func ResolveDeviceARN(explicit string, lookupEnv func(string) (string, bool), configured string) string {
	if v := strings.TrimSpace(explicit); v != "" {
		return v
	}
	if lookupEnv != nil {
		if v, ok := lookupEnv(EnvDeviceARN); ok && strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	if v := strings.TrimSpace(configured); v != "" {
		return v
	}
	return DefaultDeviceARN
}

// DeviceType is QPU or SIMULATOR.
type DeviceType string

const (
	DeviceTypeQPU       DeviceType = "QPU"
	DeviceTypeSimulator DeviceType = "SIMULATOR"
)

// DeviceInfo describes one Braket device.
type DeviceInfo struct {
	DeviceARN      string     `json:"device_arn"`
	DeviceName     string     `json:"device_name"`
	DeviceType     DeviceType `json:"device_type"`
	ProviderName   string     `json:"provider_name"`
	Status         string     `json:"status"`
	Qubits         int        `json:"qubits"`
	Connectivity   string     `json:"connectivity,omitempty"`
	Paradigm       string     `json:"paradigm,omitempty"`
	MaxShots       int        `json:"max_shots"`
	SupportedGates []string   `json:"supported_gates"`
}

func deviceType(t types.DeviceType) DeviceType {
	if t == types.DeviceTypeQpu {
		return DeviceTypeQPU
	}
	return DeviceTypeSimulator
}

// ListDevices returns every device visible to the account.
func (s *Service) ListDevices(ctx context.Context) ([]DeviceInfo, error) {
	devices := []DeviceInfo{}
	var next *string
	for {
		if err := s.wait(ctx); err != nil {
			return nil, errors.MarkDevice(err)
		}
		out, err := s.clients.Braket.SearchDevices(ctx, &braket.SearchDevicesInput{
			Filters:   []types.SearchDevicesFilter{},
			NextToken: next,
		})
		if err != nil {
			return nil, errors.MarkDevice(errors.WithHint(errors.Wrap(err, "search devices"), "check AWS credentials and the configured region"))
		}
		for _, d := range out.Devices {
			devices = append(devices, DeviceInfo{
				DeviceARN:      aws.ToString(d.DeviceArn),
				DeviceName:     aws.ToString(d.DeviceName),
				DeviceType:     deviceType(d.DeviceType),
				ProviderName:   aws.ToString(d.ProviderName),
				Status:         string(d.DeviceStatus),
				SupportedGates: []string{},
			})
		}
		if aws.ToString(out.NextToken) == "" {
			break
		}
		next = out.NextToken
	}
	s.log.Debugw("Listed devices", logger.FieldCount, len(devices))
	return devices, nil
}

// GetDevice returns the details of a single device, including the
// properties parsed from its capabilities document.
func (s *Service) GetDevice(ctx context.Context, arn string) (DeviceInfo, error) {
	if strings.TrimSpace(arn) == "" {
		return DeviceInfo{}, errors.NewInvalidRequestError("device_arn is required")
	}
	if err := s.wait(ctx); err != nil {
		return DeviceInfo{}, errors.MarkDevice(err)
	}
	out, err := s.clients.Braket.GetDevice(ctx, &braket.GetDeviceInput{DeviceArn: aws.String(arn)})
	if err != nil {
		return DeviceInfo{}, errors.MarkDevice(errors.Wrapf(err, "get device %s", arn))
	}

	info := DeviceInfo{
		DeviceARN:      aws.ToString(out.DeviceArn),
		DeviceName:     aws.ToString(out.DeviceName),
		DeviceType:     deviceType(out.DeviceType),
		ProviderName:   aws.ToString(out.ProviderName),
		Status:         string(out.DeviceStatus),
		SupportedGates: []string{},
	}
	if caps := aws.ToString(out.DeviceCapabilities); caps != "" {
		if err := applyCapabilities(&info, caps); err != nil {
			s.log.Warnw("Unreadable device capabilities", logger.FieldDeviceARN, arn, logger.FieldError, err)
		}
	}
	return info, nil
}

type capabilities struct {
	Service struct {
		ShotsRange []int `json:"shotsRange"`
	} `json:"service"`
	Action   map[string]actionProperties `json:"action"`
	Paradigm struct {
		Header struct {
			Name string `json:"name"`
		} `json:"braketSchemaHeader"`
		QubitCount   int `json:"qubitCount"`
		Connectivity *struct {
			FullyConnected    bool                `json:"fullyConnected"`
			ConnectivityGraph map[string][]string `json:"connectivityGraph"`
		} `json:"connectivity"`
	} `json:"paradigm"`
}

type actionProperties struct {
	SupportedOperations []string `json:"supportedOperations"`
}

// Action schemas checked for the gate list, preferred first.
var actionKeys = []string{"braket.ir.openqasm.program", "braket.ir.jaqcd.program"}

func applyCapabilities(info *DeviceInfo, doc string) error {
	var caps capabilities
	if err := json.Unmarshal([]byte(doc), &caps); err != nil {
		return errors.Wrap(err, "decode device capabilities")
	}

	if n := len(caps.Service.ShotsRange); n > 0 {
		info.MaxShots = caps.Service.ShotsRange[n-1]
	}
	for _, key := range actionKeys {
		if a, ok := caps.Action[key]; ok && len(a.SupportedOperations) > 0 {
			info.SupportedGates = a.SupportedOperations
			break
		}
	}

	p := caps.Paradigm
	info.Qubits = p.QubitCount
	switch name := p.Header.Name; {
	case strings.Contains(name, "gate_model"):
		info.Paradigm = "gate-based"
	case strings.Contains(name, "analog_hamiltonian"):
		info.Paradigm = "analog hamiltonian simulation"
	default:
		info.Paradigm = name
	}
	if c := p.Connectivity; c != nil {
		if c.FullyConnected {
			info.Connectivity = "fully connected"
		} else {
			info.Connectivity = fmt.Sprintf("graph with %d connected qubits", len(c.ConnectivityGraph))
		}
	}
	return nil
}

// ValidateAccess makes one cheap call to confirm credentials and service
// reachability. Callers treat failure as a warning.
func (s *Service) ValidateAccess(ctx context.Context) error {
	if !RegionSupported(s.region) {
		s.log.Warnw("Region may not support Amazon Braket",
			logger.FieldRegion, s.region,
			"supported", strings.Join(SupportedRegions, ","),
		)
	}
	if err := s.wait(ctx); err != nil {
		return err
	}
	_, err := s.clients.Braket.SearchDevices(ctx, &braket.SearchDevicesInput{
		Filters:    []types.SearchDevicesFilter{},
		MaxResults: aws.Int32(1),
	})
	if err != nil {
		s.log.Warnw("Braket access check failed", logger.FieldRegion, s.region, logger.FieldError, err)
		return errors.MarkDevice(errors.WithHint(errors.Wrap(err, "validate Braket access"), "ensure the credentials allow braket:SearchDevices"))
	}
	s.log.Infow("Braket access validated", logger.FieldRegion, s.region)
	return nil
}
