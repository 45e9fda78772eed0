// Command gatepass is the staff terminal for event check-in: log in once,
// then verify scanned or typed payment identifiers, print badges, and pull
// dashboard numbers. A camera scanner is expected to type decoded codes on
// stdin (keyboard-wedge style); there is no camera handling here.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/skip2/go-qrcode"

	"github.com/ecell-iiitr/gatepass/pkg/client"
)

const defaultServerURL = "http://localhost:8080"

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cmd, args := os.Args[1], os.Args[2:]
	if err := run(cmd, args); err != nil {
		fmt.Fprintln(os.Stderr, "gatepass:", err)
		os.Exit(1)
	}
}

func run(cmd string, args []string) error {
	ctx := context.Background()

	switch cmd {
	case "login":
		return cmdLogin(ctx, args)
	case "logout":
		return cmdLogout()
	case "verify":
		return withSession(func(api *client.Client) error { return cmdVerify(ctx, api, args) })
	case "scan":
		return withSession(func(api *client.Client) error { return cmdScan(ctx, api) })
	case "checkin":
		return withSession(func(api *client.Client) error { return cmdCheckIn(ctx, api, args) })
	case "badge":
		return withSession(func(api *client.Client) error { return cmdBadge(ctx, api, args) })
	case "history":
		return withSession(func(api *client.Client) error { return cmdHistory(ctx, api) })
	case "stats":
		return withSession(func(api *client.Client) error { return cmdStats(ctx, api) })
	case "export":
		return withSession(func(api *client.Client) error { return cmdExport(ctx, api, args) })
	case "help", "-h", "--help":
		usage()
		return nil
	default:
		usage()
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `usage: gatepass <command> [flags]

commands:
  login    -u <username> -p <password>   authenticate and store the session
  logout                                 forget the stored session
  verify   <id>                          look up a participant
  scan                                   read ids from stdin, verify, confirm check-in
  checkin  <id>                          mark a participant as printed
  badge    <id> [-o file.png]            write the participant's QR badge
  history                                list checked-in participants
  stats                                  show dashboard counters
  export   [-o file.xlsx]                download the history workbook

The server address comes from GATEPASS_URL (default `+defaultServerURL+`).`)
}

func serverURL() string {
	if url := os.Getenv("GATEPASS_URL"); url != "" {
		return strings.TrimRight(url, "/")
	}
	return defaultServerURL
}

// withSession restores the stored session and hands an authenticated client
// to fn. Missing or expired sessions route to login, like the SPA does.
func withSession(fn func(api *client.Client) error) error {
	path, err := client.DefaultSessionPath()
	if err != nil {
		return err
	}
	session, err := client.LoadSession(path)
	if err != nil {
		return err
	}
	if !session.Valid() {
		return errors.New("session expired, run `gatepass login` again")
	}
	return fn(client.New(serverURL(), session.AccessToken))
}

func cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	username := fs.String("u", "", "username")
	password := fs.String("p", "", "password")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *username == "" || *password == "" {
		return errors.New("login requires -u and -p")
	}

	api := client.New(serverURL(), "")
	session, err := api.Login(ctx, *username, *password)
	if err != nil {
		return err
	}

	path, err := client.DefaultSessionPath()
	if err != nil {
		return err
	}
	if err := session.Save(path); err != nil {
		return err
	}

	fmt.Printf("logged in as %s\n", session.User.Name)
	return nil
}

func cmdLogout() error {
	path, err := client.DefaultSessionPath()
	if err != nil {
		return err
	}
	if err := client.ClearSession(path); err != nil {
		return err
	}
	fmt.Println("logged out")
	return nil
}

func cmdVerify(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("verify requires exactly one id")
	}

	v := client.NewVerifier(api)
	if err := v.Verify(ctx, args[0]); err != nil {
		return errors.New(v.ErrMsg)
	}
	printParticipant(v.Participant)
	return nil
}

// cmdScan is the terminal version of the scan page: each line on stdin is a
// decoded code, verified and confirmed interactively.
func cmdScan(ctx context.Context, api *client.Client) error {
	v := client.NewVerifier(api)
	in := bufio.NewScanner(os.Stdin)

	fmt.Println("scan a code or type an id (empty line to quit)")
	for {
		fmt.Print("> ")
		if !in.Scan() {
			break
		}
		id := strings.TrimSpace(in.Text())
		if id == "" {
			break
		}

		if err := v.Verify(ctx, id); err != nil {
			fmt.Println(v.ErrMsg)
			continue
		}
		printParticipant(v.Participant)

		if v.Participant.CheckInStatus == "Printed" {
			fmt.Printf("already checked in by %s at %s\n", v.Participant.CheckedInBy, v.Participant.Timestamp)
		}
		fmt.Print("check in and print badge? [y/N] ")
		if !in.Scan() {
			break
		}
		if !strings.EqualFold(strings.TrimSpace(in.Text()), "y") {
			continue
		}

		result, err := v.CheckIn(ctx)
		if err != nil {
			fmt.Println(v.ErrMsg)
			continue
		}
		file := "badge-" + v.Participant.ID + ".png"
		if err := writeBadge(v.Participant, file); err != nil {
			fmt.Println("badge generation failed:", err)
			continue
		}
		fmt.Printf("%s: %s (badge: %s)\n", result.Message, result.Name, file)
	}
	return in.Err()
}

func cmdCheckIn(ctx context.Context, api *client.Client, args []string) error {
	if len(args) != 1 {
		return errors.New("checkin requires exactly one id")
	}
	result, err := api.CheckIn(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s: %s\n", result.Message, result.Name)
	return nil
}

func cmdBadge(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("badge", flag.ContinueOnError)
	out := fs.String("o", "", "output file (default badge-<id>.png)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errors.New("badge requires exactly one id")
	}

	p, err := api.Participant(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	file := *out
	if file == "" {
		file = "badge-" + p.ID + ".png"
	}
	if err := writeBadge(p, file); err != nil {
		return err
	}

	printParticipant(p)
	fmt.Println("badge written to", file)
	return nil
}

// writeBadge renders the payment identifier as a QR code so the printed card
// can be re-scanned at the gate.
func writeBadge(p *client.Participant, file string) error {
	return qrcode.WriteFile(p.ID, qrcode.Medium, 256, file)
}

func cmdHistory(ctx context.Context, api *client.Client) error {
	history, err := api.History(ctx)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		fmt.Println("no check-ins yet")
		return nil
	}
	for _, e := range history {
		fmt.Printf("%-16s %-24s %-24s by %-10s %s\n", e.ID, e.Name, e.College, e.CheckedInBy, e.Timestamp)
	}
	return nil
}

func cmdStats(ctx context.Context, api *client.Client) error {
	stats, err := api.Stats(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("total: %d  checked in: %d  pending: %d\n", stats.Total, stats.CheckedIn, stats.Pending)
	return nil
}

func cmdExport(ctx context.Context, api *client.Client, args []string) error {
	fs := flag.NewFlagSet("export", flag.ContinueOnError)
	out := fs.String("o", "checkin-history.xlsx", "output file")
	if err := fs.Parse(args); err != nil {
		return err
	}

	f, err := os.Create(*out)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := api.ExportHistory(ctx, f); err != nil {
		return err
	}
	fmt.Println("history written to", *out)
	return nil
}

func printParticipant(p *client.Participant) {
	fmt.Printf("id: %s\nname: %s\ncollege: %s\ngender: %s\ncontact: %s\naccommodation: %s\npass: %s\nstatus: %s\n",
		p.ID, p.Name, p.College, p.Gender, p.Contact, p.Accommodation, p.PassType, p.CheckInStatus)
}
