// SPDX-FileCopyrightText : © 2024 Galvanized Logic Inc.
// SPDX-License-Identifier: BSD-2-Clause

package render

// SoftwareGPULibrary is a GPULibrary that never touches a real
// graphics driver: it reports the first requested backend as
// available and every device/frame-target operation as successful,
// unless the matching FailAdapter/FailDevice/FailTarget flag is set.
// It exists for headless hosts and tests exercising Backend's
// staging/resize/frame-cycle bookkeeping without a live adapter,
// substituting for a real GPULibrary behind the same interface.
type SoftwareGPULibrary struct {
	PresentModes []string
	FailAdapter  bool
	FailDevice   bool
	FailTarget   bool
}

// NewSoftwareGPULibrary returns a SoftwareGPULibrary supporting all
// three standard present modes.
func NewSoftwareGPULibrary() *SoftwareGPULibrary {
	return &SoftwareGPULibrary{PresentModes: []string{"fifo", "mailbox", "immediate"}}
}

func (s *SoftwareGPULibrary) Available() bool { return true }

func (s *SoftwareGPULibrary) RequestAdapter(backends []string) (AdapterInfo, bool) {
	if s.FailAdapter || len(backends) == 0 {
		return AdapterInfo{}, false
	}
	return AdapterInfo{Backend: backends[0], Name: "software"}, true
}

func (s *SoftwareGPULibrary) RequestDevice(AdapterInfo) error {
	if s.FailDevice {
		return errDeviceUnavailable
	}
	return nil
}

func (s *SoftwareGPULibrary) SupportedPresentModes() []string { return s.PresentModes }

func (s *SoftwareGPULibrary) RebuildFrameTarget(width, height int) error {
	if s.FailTarget {
		return errFrameTargetUnavailable
	}
	return nil
}

var errDeviceUnavailable = newSimpleError("render: device unavailable")
var errFrameTargetUnavailable = newSimpleError("render: frame target allocation failed")

type simpleError string

func (e simpleError) Error() string { return string(e) }
func newSimpleError(s string) error { return simpleError(s) }
