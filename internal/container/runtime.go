// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package container runs command-line extraction tools packaged as container
// images through docker or podman. The PDF is streamed on stdin and the tool
// output is read from stdout, so no bind mounts are needed.
package container

import (
	"bytes"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const (
	binDocker = "docker"
	binPodman = "podman"

	// Auto selects docker when it works and podman otherwise.
	Auto = "auto"
)

// Runtime provides the container operations an extraction backend needs.
type Runtime interface {
	// Name returns the runtime binary name ("docker" or "podman").
	Name() string

	// Available reports whether the runtime binary is on PATH and its daemon
	// (or service) answers an info command.
	Available() bool

	// ImageExists returns nil when image is present locally.
	ImageExists(image string) error

	// Run starts a throwaway container from image with args as its command,
	// streaming stdin in and stdout out. Whatever the container wrote to
	// stderr is included in the returned error.
	Run(image string, args []string, stdin io.Reader, stdout io.Writer) error
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunSilent(name string, args ...string) error
	RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error
}

type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) RunSilent(name string, args ...string) error {
	return exec.Command(name, args...).Run()
}

func (o *osExecutor) RunPiped(name string, args []string, stdin io.Reader, stdout, stderr io.Writer) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = stdin
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

// runtime implements Runtime for one container binary. Docker and podman
// differ only in the binary name and the image check subcommand.
type runtime struct {
	bin           string
	imageCheckCmd []string // e.g. ["image", "inspect"] for docker
	exec          executor
}

func (r *runtime) Name() string { return r.bin }

func (r *runtime) Available() bool {
	if _, err := r.exec.LookPath(r.bin); err != nil {
		return false
	}
	return r.exec.RunSilent(r.bin, "info") == nil
}

func (r *runtime) ImageExists(image string) error {
	args := append(append([]string{}, r.imageCheckCmd...), image)
	if err := r.exec.RunSilent(r.bin, args...); err != nil {
		return fmt.Errorf("image %s not found in %s: %w", image, r.bin, err)
	}
	return nil
}

func (r *runtime) Run(image string, args []string, stdin io.Reader, stdout io.Writer) error {
	cmdArgs := make([]string, 0, len(args)+5)
	cmdArgs = append(cmdArgs, "run", "--rm", "-i", "--network=none", image)
	cmdArgs = append(cmdArgs, args...)

	var stderr bytes.Buffer
	if err := r.exec.RunPiped(r.bin, cmdArgs, stdin, stdout, &stderr); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return fmt.Errorf("running %s container %s: %w: %s", r.bin, image, err, msg)
		}
		return fmt.Errorf("running %s container %s: %w", r.bin, image, err)
	}
	return nil
}

func newDockerRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binDocker,
		imageCheckCmd: []string{"image", "inspect"},
		exec:          exec,
	}
}

func newPodmanRuntime(exec executor) *runtime {
	return &runtime{
		bin:           binPodman,
		imageCheckCmd: []string{"image", "exists"},
		exec:          exec,
	}
}

var defaultExec = &osExecutor{}

// Select returns the runtime called name ("docker", "podman" or "auto").
// With "auto" (or an empty name) docker is tried first, then podman. An
// error is returned when the chosen runtime is not operational.
func Select(name string) (Runtime, error) {
	return selectRuntime(name, defaultExec)
}

func selectRuntime(name string, exec executor) (Runtime, error) {
	var candidates []*runtime
	switch strings.ToLower(name) {
	case "", Auto:
		candidates = []*runtime{newDockerRuntime(exec), newPodmanRuntime(exec)}
	case binDocker:
		candidates = []*runtime{newDockerRuntime(exec)}
	case binPodman:
		candidates = []*runtime{newPodmanRuntime(exec)}
	default:
		return nil, fmt.Errorf("unknown container runtime %q (want auto, docker, or podman)", name)
	}

	for _, rt := range candidates {
		if rt.Available() {
			return rt, nil
		}
	}

	names := make([]string, len(candidates))
	for i, rt := range candidates {
		names[i] = rt.bin
	}
	return nil, fmt.Errorf("no container runtime available: %s not found or not operational",
		strings.Join(names, " nor "))
}
