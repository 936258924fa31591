package docker

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrNotInstalled is returned when the docker binary cannot be run.
var ErrNotInstalled = errors.New("docker; docker is not installed or not on the PATH")

// ExitError is returned by [Runtime.Run] when `docker run` exits non-zero.
type ExitError struct {
	Code int
}

// Error implements error.
func (e *ExitError) Error() string {
	return fmt.Sprintf("docker; ElasticMQ failed to start in Docker with exit code %d", e.Code)
}

// NewRuntime returns a new runtime that shells out to docker and lsof.
func NewRuntime(options ...RuntimeOption) *Runtime {
	r := Runtime{
		binary:         DefaultBinary,
		lsof:           DefaultLsof,
		stdout:         os.Stdout,
		stderr:         os.Stderr,
		logger:         slog.Default(),
		commandContext: exec.CommandContext,
		kill:           killProcess,
	}
	for _, opt := range options {
		opt(&r)
	}
	return &r
}

// RuntimeOption mutates a runtime.
type RuntimeOption func(*Runtime)

// OptBinary sets the docker binary name or path.
func OptBinary(binary string) RuntimeOption {
	return func(r *Runtime) { r.binary = binary }
}

// OptLsof sets the lsof binary name or path.
func OptLsof(lsof string) RuntimeOption {
	return func(r *Runtime) { r.lsof = lsof }
}

// OptOutput sets where progress and container output are written.
func OptOutput(stdout, stderr io.Writer) RuntimeOption {
	return func(r *Runtime) {
		r.stdout = stdout
		r.stderr = stderr
	}
}

// OptLogger sets the runtime logger.
func OptLogger(logger *slog.Logger) RuntimeOption {
	return func(r *Runtime) { r.logger = logger }
}

// OptCommandContext sets how commands are constructed, e.g. to substitute a fake binary.
func OptCommandContext(fn func(context.Context, string, ...string) *exec.Cmd) RuntimeOption {
	return func(r *Runtime) { r.commandContext = fn }
}

// OptKill sets how processes holding a port are terminated.
func OptKill(fn func(pid int) error) RuntimeOption {
	return func(r *Runtime) { r.kill = fn }
}

// Runtime starts ElasticMQ containers.
type Runtime struct {
	binary         string
	lsof           string
	stdout         io.Writer
	stderr         io.Writer
	logger         *slog.Logger
	commandContext func(context.Context, string, ...string) *exec.Cmd
	kill           func(pid int) error
}

// Installed returns [ErrNotInstalled] if `docker --version` fails.
func (r *Runtime) Installed(ctx context.Context) error {
	output, err := r.commandContext(ctx, r.binary, "--version").Output()
	if err != nil {
		r.logger.Debug("docker version probe failed", slog.String("binary", r.binary), slog.Any("err", err))
		return ErrNotInstalled
	}
	r.logger.Debug("docker found", slog.String("version", strings.TrimSpace(string(output))))
	return nil
}

// FreePort kills every process listening on the given port.
//
// A port with no listener is not an error, and neither is a process that
// cannot be killed; the failure is printed and the remaining processes are tried.
func (r *Runtime) FreePort(ctx context.Context, port int) error {
	output, err := r.commandContext(ctx, r.lsof, "-t", fmt.Sprintf("-i:%d", port)).Output()
	if err != nil {
		// lsof exits 1 when nothing matches
		r.logger.Debug("lsof found no process", slog.Int("port", port), slog.Any("err", err))
		fmt.Fprintf(r.stdout, "Port %d: unallocated\n", port)
		return nil
	}
	pids, err := parsePIDs(string(output))
	if err != nil {
		return fmt.Errorf("docker; reading lsof output for port %d: %w", port, err)
	}
	if len(pids) == 0 {
		fmt.Fprintf(r.stdout, "Port %d: unallocated\n", port)
		return nil
	}
	for _, pid := range pids {
		fmt.Fprintf(r.stdout, "Killing process on port %d (PID: %d)...\n", port, pid)
		if err := r.kill(pid); err != nil {
			r.logger.Debug("kill failed", slog.Int("port", port), slog.Int("pid", pid), slog.Any("err", err))
			fmt.Fprintf(r.stderr, "Unable to kill process on port %d (PID: %d): %v\n", port, pid, err)
			continue
		}
		fmt.Fprintf(r.stdout, "Process on port %d terminated.\n", port)
	}
	return nil
}

// Run starts a detached ElasticMQ container and streams docker's output until it exits.
func (r *Runtime) Run(ctx context.Context, options RunOptions) error {
	options = options.withDefaults()
	fmt.Fprintf(r.stdout, "Starting ElasticMQ on ports %d (API) and %d (UI)...\n", options.APIPort, options.UIPort)

	cmd := r.commandContext(ctx, r.binary, options.args()...)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return fmt.Errorf("docker; %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return fmt.Errorf("docker; %w", err)
	}
	r.logger.Debug("running docker", slog.String("binary", r.binary), slog.Any("args", options.args()))
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("docker; starting %s: %w", r.binary, err)
	}

	var group errgroup.Group
	group.Go(func() error {
		return pumpLines(stdout, r.stdout, "Docker output: ")
	})
	group.Go(func() error {
		return pumpLines(stderr, r.stderr, "Docker error: ")
	})
	pumpErr := group.Wait()

	if err := cmd.Wait(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &ExitError{Code: exitErr.ExitCode()}
		}
		return fmt.Errorf("docker; waiting for %s: %w", r.binary, err)
	}
	if pumpErr != nil {
		return fmt.Errorf("docker; reading output: %w", pumpErr)
	}
	fmt.Fprintln(r.stdout, "ElasticMQ started successfully in Docker")
	return nil
}

func pumpLines(from io.Reader, to io.Writer, prefix string) error {
	scanner := bufio.NewScanner(from)
	for scanner.Scan() {
		fmt.Fprintln(to, prefix+scanner.Text())
	}
	return scanner.Err()
}

func parsePIDs(output string) ([]int, error) {
	var pids []int
	for _, field := range strings.Fields(output) {
		pid, err := strconv.Atoi(field)
		if err != nil {
			return nil, err
		}
		pids = append(pids, pid)
	}
	return pids, nil
}

func killProcess(pid int) error {
	process, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return process.Kill()
}
