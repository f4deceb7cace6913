package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/opsforge/vcadmin/internal/config"
	"github.com/opsforge/vcadmin/internal/log"
	"github.com/opsforge/vcadmin/internal/ui"
	"github.com/opsforge/vcadmin/internal/vmops"
	"github.com/opsforge/vcadmin/internal/vsphere"
)

const optionPrompt = "Enter your option: "

var consoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive administration console",
	Long: `Connect to vCenter and walk the menu-driven console. The main menu
covers server details, session details, and the VM inventory; the VM Actions
submenu runs the gated operations.`,
	RunE: runConsole,
}

func init() {
	rootCmd.AddCommand(consoleCmd)
}

// console holds the state of one interactive session.
type console struct {
	rl      *readline.Instance
	client  *vsphere.Client
	cfg     *config.Config
	actions *vmops.Actions
	prompt  *readlinePrompter
}

func runConsole(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Printf("vCenter Host: %s\n", cfg.Host)
	fmt.Printf("Username: %s\n", cfg.User)

	password, err := resolvePassword(cfg.User)
	if err != nil {
		return err
	}

	fmt.Println("Connecting to vCenter...")
	ctx := context.Background()
	client, err := vsphere.Connect(ctx, cfg, password)
	if err != nil {
		return err
	}

	store := openJournal()
	if store != nil {
		defer store.Close()
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          optionPrompt,
		HistoryFile:     filepath.Join(config.Dir(), "console_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		_ = client.Logout(ctx)
		return fmt.Errorf("readline init: %w", err)
	}
	defer rl.Close()

	prompt := &readlinePrompter{rl: rl}
	c := &console{
		rl:      rl,
		client:  client,
		cfg:     cfg,
		actions: newActions(client, store, prompt),
		prompt:  prompt,
	}

	printAbout(client.About())
	c.showSession(ctx)

	err = c.run(ctx)

	fmt.Println("Exiting program...")
	if lerr := client.Logout(context.Background()); lerr != nil {
		log.Debug("logout failed", "error", lerr)
	}
	fmt.Println("Goodbye!")
	return err
}

func (c *console) run(ctx context.Context) error {
	for {
		c.printMainMenu()
		line, err := c.readOption()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		switch line {
		case "1":
			fmt.Println("VCenter Info Option Selected.")
			printAbout(c.client.About())
		case "2":
			fmt.Println("Session Details Selected.")
			c.showSession(ctx)
		case "3":
			fmt.Println("VM Details Selected.")
			c.showVMDetails(ctx)
		case "4":
			if err := c.vmActionLoop(ctx); err != nil {
				return err
			}
		case "0":
			return nil
		case "":
			// Blank input redraws the menu.
		default:
			fmt.Println("Invalid option. Please try again.")
		}
	}
}

func (c *console) vmActionLoop(ctx context.Context) error {
	for {
		c.printVMMenu()
		line, err := c.readOption()
		if err != nil {
			if err == io.EOF {
				return nil
			}
			return err
		}

		var opErr error
		switch line {
		case "1":
			opErr = c.actions.PowerOn(ctx, "")
		case "2":
			opErr = c.actions.PowerOff(ctx, "")
		case "3":
			opErr = c.actions.CreateSnapshot(ctx, "", nil)
		case "4":
			opErr = c.actions.Delete(ctx, "")
		case "5":
			opErr = c.actions.Reconfigure(ctx, "", nil)
		case "6":
			opErr = c.actions.Rename(ctx, "", "")
		case "0":
			return nil
		case "":
			continue
		default:
			fmt.Println("Invalid option. Please try again.")
			continue
		}

		// An operation error never ends the session; it is shown and the
		// menu comes back.
		if opErr != nil {
			ui.Errorf("%v", opErr)
		}
	}
}

func (c *console) printMainMenu() {
	fmt.Println("\n[1] VCenter Info")
	fmt.Println("[2] Session Details")
	fmt.Println("[3] VM Details")
	fmt.Println("[4] Perform VM Actions")
	fmt.Println("[0] Exit the program.")
}

func (c *console) printVMMenu() {
	fmt.Println("\n[1] Power on VM")
	fmt.Println("[2] Power Off VM")
	fmt.Println("[3] Take a Snapshot")
	fmt.Println("[4] Delete a VM")
	fmt.Println("[5] Reconfigure a VM")
	fmt.Println("[6] Rename a VM")
	fmt.Println("[0] Exit the VM Actions.")
}

// readOption reads one menu choice. ^C clears the line and asks again, ^D
// surfaces as io.EOF.
func (c *console) readOption() (string, error) {
	for {
		line, err := c.rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err != nil {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}
}

func (c *console) showSession(ctx context.Context) {
	info, err := c.client.SessionInfo(ctx)
	if err != nil {
		ui.Errorf("fetching session info: %v", err)
		return
	}
	printSessionInfo(info, c.cfg.Host)
}

func (c *console) showVMDetails(ctx context.Context) {
	filter, err := c.prompt.Ask("Enter VM name to search (leave empty for all): ")
	if err != nil {
		ui.Errorf("reading input: %v", err)
		return
	}
	filter = strings.TrimSpace(filter)

	vms, err := c.client.ListVMs(ctx, filter)
	if err != nil {
		ui.Errorf("listing VMs: %v", err)
		return
	}
	printVMTable(os.Stdout, vms, filter)
}

// readlinePrompter adapts readline to the vmops.Prompter interface. The
// dialogue prompts begin mid-flow, so any leading newlines are printed
// directly and readline only owns the final line.
type readlinePrompter struct {
	rl *readline.Instance
}

func (p *readlinePrompter) Ask(prompt string) (string, error) {
	if i := strings.LastIndexByte(prompt, '\n'); i >= 0 {
		fmt.Print(prompt[:i+1])
		prompt = prompt[i+1:]
	}
	p.rl.SetPrompt(prompt)
	defer p.rl.SetPrompt(optionPrompt)

	line, err := p.rl.Readline()
	if err != nil {
		return "", err
	}
	return line, nil
}
