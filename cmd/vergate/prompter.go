package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"vergate/internal/ports"
	"vergate/internal/types"
)

// terminalPrompter is the CLI stand-in for the host's dialog layer. It renders
// the upgrade warning and the fixed terminal messages on stdout and reads the
// choice from stdin.
type terminalPrompter struct {
	cfg types.GateConfig
	in  *bufio.Reader
}

func newTerminalPrompter(cfg types.GateConfig) *terminalPrompter {
	return &terminalPrompter{cfg: cfg, in: bufio.NewReader(os.Stdin)}
}

func (p *terminalPrompter) Interactive() bool {
	info, err := os.Stdin.Stat()
	if err != nil {
		return false
	}
	return info.Mode()&os.ModeCharDevice != 0
}

func (p *terminalPrompter) PromptUpgrade(ctx context.Context, current, required int) (ports.Choice, error) {
	fmt.Printf("This installation is running runtime version %d, but the %s channel now requires version %d or newer.\n",
		current, p.cfg.ChannelName, required)
	fmt.Println("Channel features will not work until the runtime is upgraded.")
	if p.cfg.ReleaseNotesURL != "" {
		fmt.Printf("Release notes: %s\n", p.cfg.ReleaseNotesURL)
	}
	if p.cfg.DownloadURL != "" {
		fmt.Printf("Download an up-to-date installation from %s\n", p.cfg.DownloadURL)
	}
	if p.cfg.ForumURL != "" {
		fmt.Printf("Questions? Visit %s\n", p.cfg.ForumURL)
	}
	fmt.Printf("Unsubscribe from the %s channel now? [y/N] ", p.cfg.ChannelName)

	line, err := p.in.ReadString('\n')
	if err != nil {
		return ports.ChoiceKeepReminding, err
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return ports.ChoiceUnsubscribe, nil
	default:
		return ports.ChoiceKeepReminding, nil
	}
}

func (p *terminalPrompter) Inform(_ context.Context, msg ports.Message, detail string) {
	switch msg {
	case ports.MessageReviewChanges:
		fmt.Printf("The %s channel has been deactivated.\n", p.cfg.ChannelName)
		fmt.Println("Run the reviewer tool and apply the staged changes to complete the removal.")
	case ports.MessageManualPersist:
		fmt.Printf("The %s channel could not be deactivated automatically: the installation appears to be on a read-only filesystem.\n",
			p.cfg.ChannelName)
		fmt.Println("Once the installation has been moved to a writable directory:")
		fmt.Println("  1. Run the reviewer tool")
		fmt.Printf("  2. Uncheck %s in the channel list\n", p.cfg.ChannelName)
		fmt.Println("  3. Apply the staged changes")
	case ports.MessageManualUnsubscribe:
		if detail != "" {
			fmt.Printf("Automatic unsubscription failed: %s\n", detail)
		} else {
			fmt.Println("Automatic unsubscription failed.")
		}
		fmt.Printf("You can unsubscribe manually by unchecking %s in the reviewer tool's channel list.\n",
			p.cfg.ChannelName)
	}
}
