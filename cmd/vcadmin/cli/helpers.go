package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"golang.org/x/term"

	"github.com/opsforge/vcadmin/internal/config"
	"github.com/opsforge/vcadmin/internal/journal"
	"github.com/opsforge/vcadmin/internal/log"
	"github.com/opsforge/vcadmin/internal/ui"
	"github.com/opsforge/vcadmin/internal/vmops"
	"github.com/opsforge/vcadmin/internal/vsphere"
	"github.com/vmware/govmomi/vim25/types"
)

// loadConfig loads the connection settings and checks that host and user are
// present.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolvePassword takes the vCenter password from VCADMIN_PASSWORD or, when
// unset, prompts for it without echo. The password only ever lives in memory.
func resolvePassword(user string) (string, error) {
	if pw := os.Getenv(config.PasswordEnv); pw != "" {
		return pw, nil
	}

	fmt.Printf("\nEnter password for %s: ", user)

	fd := int(os.Stdin.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Println()
		if err != nil {
			return "", fmt.Errorf("reading password: %w", err)
		}
		return string(b), nil
	}

	// Fallback for non-terminal (piped input)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil && line == "" {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// withClient connects to vCenter, runs fn, and logs out.
func withClient(fn func(ctx context.Context, c *vsphere.Client, cfg *config.Config) error) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	password, err := resolvePassword(cfg.User)
	if err != nil {
		return err
	}

	ctx := context.Background()
	c, err := vsphere.Connect(ctx, cfg, password)
	if err != nil {
		return err
	}
	defer func() {
		if err := c.Logout(context.Background()); err != nil {
			log.Debug("logout failed", "error", err)
		}
	}()

	return fn(ctx, c, cfg)
}

// withActions wraps withClient with a journal and a stdin prompter for the
// one-shot operation commands.
func withActions(fn func(ctx context.Context, a *vmops.Actions) error) error {
	return withClient(func(ctx context.Context, c *vsphere.Client, cfg *config.Config) error {
		store := openJournal()
		if store != nil {
			defer store.Close()
		}
		a := newActions(c, store, vmops.NewReaderPrompter(os.Stdin, os.Stdout))
		return fn(ctx, a)
	})
}

// openJournal opens the journal, or returns nil when it cannot be opened.
// A broken journal never blocks an operation.
func openJournal() *journal.Store {
	path := filepath.Join(config.Dir(), "journal.db")
	if err := os.MkdirAll(config.Dir(), 0o700); err != nil {
		ui.Warnf("journal unavailable: %v", err)
		return nil
	}
	store, err := journal.Open(path)
	if err != nil {
		ui.Warnf("journal unavailable: %v", err)
		return nil
	}
	return store
}

func newActions(c *vsphere.Client, store *journal.Store, prompter vmops.Prompter) *vmops.Actions {
	a := &vmops.Actions{
		Directory: c,
		Invoker:   c,
		Prompter:  prompter,
		Out:       os.Stdout,
		DryRun:    dryRun,
	}
	// A nil *Store inside the interface would defeat the nil checks in vmops.
	if store != nil {
		a.Recorder = store
	}
	return a
}

func printAbout(about types.AboutInfo) {
	fmt.Println()
	fmt.Println(ui.Bold(about.FullName))
	fmt.Printf("  Version:  %s (build %s)\n", about.Version, about.Build)
	fmt.Printf("  API:      %s %s\n", about.ApiType, about.ApiVersion)
	if about.InstanceUuid != "" {
		fmt.Printf("  Instance: %s\n", about.InstanceUuid)
	}
}

func printSessionInfo(info vsphere.SessionInfo, host string) {
	fmt.Println("\n=== Current Session Information ===")
	fmt.Printf("DOMAIN/Username: %s\n", info.UserName)
	fmt.Printf("vCenter Server: %s\n", host)
	fmt.Printf("Source IP Address: %s\n", info.IPAddress)
	if !info.LoginTime.IsZero() {
		fmt.Printf("Session Started: %s\n", formatTimeAgo(info.LoginTime))
	}
	fmt.Println(strings.Repeat("=", 40))
}

// printVMTable renders the inventory the way the VM Details view always has.
func printVMTable(w io.Writer, vms []vmops.VirtualMachine, filter string) {
	if len(vms) == 0 {
		if filter != "" {
			fmt.Fprintf(w, "\nNo VMs found matching '%s'\n", filter)
		} else {
			fmt.Fprintln(w, "\nNo VMs found!")
		}
		return
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tPOWER STATE\tCPUS\tMEMORY (GB)\tIP ADDRESS")
	for _, vm := range vms {
		ip := vm.GuestIP
		if ip == "" {
			ip = "N/A"
		}
		fmt.Fprintf(tw, "%s\t%s\t%d\t%.2f\t%s\n",
			vm.Name, vm.PowerState, vm.NumCPU, vm.MemoryGB(), ip)
	}
	tw.Flush()
	fmt.Fprintln(w, ui.Dim(fmt.Sprintf("%d VM(s)", len(vms))))
}

// formatTimeAgo renders t as a relative age, falling back to the date for
// anything older than a week.
func formatTimeAgo(t time.Time) string {
	d := time.Since(t)

	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return agoUnits(int(d.Minutes()), "minute")
	case d < 24*time.Hour:
		return agoUnits(int(d.Hours()), "hour")
	case d < 7*24*time.Hour:
		return agoUnits(int(d.Hours()/24), "day")
	default:
		return t.Format("Jan 2, 2006")
	}
}

func agoUnits(n int, unit string) string {
	if n == 1 {
		return "1 " + unit + " ago"
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
