package relay

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type invocation struct {
	Name string
	Args []string
}

type fakeInvoker struct {
	calls []invocation
	err   error
}

func (f *fakeInvoker) Invoke(name string, args []string) error {
	f.calls = append(f.calls, invocation{Name: name, Args: append([]string(nil), args...)})
	return f.err
}

type exitStatus int

func (s exitStatus) Error() string { return fmt.Sprintf("exit status %d", int(s)) }
func (s exitStatus) ExitCode() int { return int(s) }

func TestExecutePassesCombinedCommands(t *testing.T) {
	fake := &fakeInvoker{}
	var out bytes.Buffer
	exec := &Executor{Invoker: fake, Interpreter: "python", Out: &out}

	if err := exec.Execute([]string{"move left", "move right"}, "balance-scale-heaviest.py"); err != nil {
		t.Fatalf("Execute: %v", err)
	}

	want := []invocation{{
		Name: "python",
		Args: []string{"balance-scale-heaviest.py", "move left\nmove right"},
	}}
	if diff := cmp.Diff(want, fake.calls); diff != "" {
		t.Fatalf("invocations mismatch (-want +got):\n%s", diff)
	}
	wantBanner := BannerHeader + "\nmove left\nmove right\n"
	if out.String() != wantBanner {
		t.Fatalf("banner = %q, want %q", out.String(), wantBanner)
	}
}

func TestExecuteEmptySequenceStillInvokes(t *testing.T) {
	fake := &fakeInvoker{}
	exec := &Executor{Invoker: fake, Interpreter: "python"}

	if err := exec.Execute(nil, "game.py"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := []invocation{{Name: "python", Args: []string{"game.py", ""}}}
	if diff := cmp.Diff(want, fake.calls); diff != "" {
		t.Fatalf("invocations mismatch (-want +got):\n%s", diff)
	}
}

func TestBannerMatchesArgument(t *testing.T) {
	sequences := [][]string{
		nil,
		{"weigh"},
		{"put 1 on left", "", "put 2 on right"},
		{"向左移动", "向右移动"},
	}
	for _, commands := range sequences {
		for _, colored := range []bool{false, true} {
			fake := &fakeInvoker{}
			var out bytes.Buffer
			exec := &Executor{Invoker: fake, Interpreter: "python", Out: &out, Color: colored}
			if err := exec.Execute(commands, "game.py"); err != nil {
				t.Fatalf("Execute: %v", err)
			}
			header, body, ok := strings.Cut(out.String(), "\n")
			if !ok {
				t.Fatalf("banner has no newline: %q", out.String())
			}
			if !strings.Contains(header, BannerHeader) {
				t.Fatalf("header = %q, want it to contain %q", header, BannerHeader)
			}
			if got := strings.TrimSuffix(body, "\n"); got != fake.calls[0].Args[1] {
				t.Fatalf("banner body %q differs from argument %q", got, fake.calls[0].Args[1])
			}
		}
	}
}

func TestExecuteReportsExitStatus(t *testing.T) {
	fake := &fakeInvoker{err: exitStatus(1)}
	exec := &Executor{Invoker: fake, Interpreter: "python"}

	err := exec.Execute([]string{"weigh"}, "game.py")
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("got %v, want *ExecutionError", err)
	}
	if execErr.ExitCode != 1 || execErr.Script != "game.py" {
		t.Fatalf("got %+v, want exit 1 for game.py", execErr)
	}
	if len(fake.calls) != 1 {
		t.Fatalf("got %d invocations, want exactly 1", len(fake.calls))
	}
}

func TestExecuteReportsLaunchFailure(t *testing.T) {
	launchErr := errors.New("executable file not found")
	exec := &Executor{Invoker: &fakeInvoker{err: launchErr}, Interpreter: "python"}

	err := exec.Execute([]string{"weigh"}, "game.py")
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("got %v, want *ExecutionError", err)
	}
	if execErr.ExitCode != -1 {
		t.Fatalf("ExitCode = %d, want -1", execErr.ExitCode)
	}
	if !errors.Is(err, launchErr) {
		t.Fatalf("got %v, want wrapped launch error", err)
	}
}

// helperInvoker re-executes the test binary so TestHelperProcess can play the
// interpreter.
type helperInvoker struct {
	ExecInvoker
}

func (h helperInvoker) Invoke(name string, args []string) error {
	helperArgs := append([]string{"-test.run=^TestHelperProcess$", "--", name}, args...)
	return h.ExecInvoker.Invoke(os.Args[0], helperArgs)
}

func TestExecInvokerRunsProcess(t *testing.T) {
	t.Setenv("PLAYTHRU_HELPER_PROCESS", "1")

	var stdout bytes.Buffer
	exec := &Executor{
		Invoker:     helperInvoker{ExecInvoker{Stdout: &stdout}},
		Interpreter: "python",
	}
	if err := exec.Execute([]string{"move left", "move right"}, "balance-scale-heaviest.py"); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	want := strconv.Quote("python") + " " + strconv.Quote("balance-scale-heaviest.py") + " " + strconv.Quote("move left\nmove right") + "\n"
	if stdout.String() != want {
		t.Fatalf("child saw %q, want %q", stdout.String(), want)
	}
}

func TestExecInvokerPropagatesExitCode(t *testing.T) {
	t.Setenv("PLAYTHRU_HELPER_PROCESS", "1")

	exec := &Executor{
		Invoker:     helperInvoker{},
		Interpreter: "python",
	}
	err := exec.Execute([]string{"weigh"}, "exit-3.py")
	var execErr *ExecutionError
	if !errors.As(err, &execErr) {
		t.Fatalf("got %v, want *ExecutionError", err)
	}
	if execErr.ExitCode != 3 {
		t.Fatalf("ExitCode = %d, want 3", execErr.ExitCode)
	}
}

func TestHelperProcess(t *testing.T) {
	if os.Getenv("PLAYTHRU_HELPER_PROCESS") != "1" {
		return
	}
	args := os.Args
	for i, arg := range args {
		if arg == "--" {
			args = args[i+1:]
			break
		}
	}
	quoted := make([]string, len(args))
	for i, arg := range args {
		quoted[i] = strconv.Quote(arg)
	}
	fmt.Println(strings.Join(quoted, " "))

	if len(args) > 1 {
		if code, ok := strings.CutPrefix(args[1], "exit-"); ok {
			n, _ := strconv.Atoi(strings.TrimSuffix(code, ".py"))
			os.Exit(n)
		}
	}
	os.Exit(0)
}
