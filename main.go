package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/live-labs/kluchnik/cmd"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "device":
		runDevice(ctx, os.Args[2:])
	case "generate":
		runGenerate(ctx, os.Args[2:])
	case "receive":
		runReceive(ctx, os.Args[2:])
	case "history":
		runHistory(ctx, os.Args[2:])
	case "decode":
		runDecode(ctx, os.Args[2:])
	case "help", "-h", "--help":
		if len(os.Args) <= 2 {
			printUsage()
			return
		}
		printCommandHelp(os.Args[2])
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runDevice(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("device", flag.ExitOnError)
	listen := fs.String("listen", ":8080", "TCP listen address for companion connections")
	seed := fs.Int64("seed", 0, "Simulation seed (0 = derive from clock)")
	ssid := fs.String("ssid", "", "Access point SSID override")
	apPass := fs.String("ap-pass", "", "Access point passphrase override")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Device(ctx, cmd.DeviceOptions{
		Listen: *listen,
		Seed:   *seed,
		SSID:   *ssid,
		APPass: *apPass,
	})
}

func runGenerate(_ context.Context, args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	length := fs.Int("length", 16, "Password length (4-32)")
	complexity := fs.String("complexity", "letters+numbers",
		"Complexity policy: numbers, numbers+lower, letters+numbers, printable")
	quick := fs.Bool("quick", false, "Draw entropy from crypto/rand instead of the simulated gate")
	seed := fs.Int64("seed", 0, "Simulation seed (0 = derive from clock)")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Generate(cmd.GenerateOptions{
		Length:     *length,
		Complexity: *complexity,
		Quick:      *quick,
		Seed:       *seed,
	})
}

func runReceive(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("receive", flag.ExitOnError)
	device := fs.String("device", "192.168.1.4:8080", "Device address")
	vault := fs.String("vault", cmd.DefaultVaultPath(), "History vault path")
	useKeyring := fs.Bool("keyring", false, "Stash the vault passphrase in the OS keyring")
	noStore := fs.Bool("no-store", false, "Print the password without recording it")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Receive(ctx, cmd.ReceiveOptions{
		Device:     *device,
		Vault:      *vault,
		UseKeyring: *useKeyring,
		NoStore:    *noStore,
	})
}

func runHistory(_ context.Context, args []string) {
	fs := flag.NewFlagSet("history", flag.ExitOnError)
	vault := fs.String("vault", cmd.DefaultVaultPath(), "History vault path")
	useKeyring := fs.Bool("keyring", false, "Read the vault passphrase from the OS keyring")
	reveal := fs.Uint64("reveal", 0, "Reveal the sealed password of a record id")
	forget := fs.Bool("forget-passphrase", false, "Remove the stashed vault passphrase from the OS keyring")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.History(cmd.HistoryOptions{
		Vault:            *vault,
		UseKeyring:       *useKeyring,
		Reveal:           *reveal,
		ForgetPassphrase: *forget,
	})
}

func runDecode(_ context.Context, args []string) {
	fs := flag.NewFlagSet("decode", flag.ExitOnError)
	payload := fs.String("payload", "", "Payload line (LEN:..,COMPLEX:..,KEY:..); empty reads stdin")
	qr := fs.Bool("qr", false, "Render the derived password as a QR symbol")
	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}

	cmd.Decode(cmd.DecodeOptions{
		Payload: *payload,
		QR:      *qr,
	})
}

func printUsage() {
	fmt.Println("kluchnik - hardware-TRNG password generator and companion")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  kluchnik <command> [arguments]")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  device    Run the simulated device (menu UI + TCP server)")
	fmt.Println("  generate  Run one generation cycle locally")
	fmt.Println("  receive   Fetch a password from a device and store it")
	fmt.Println("  history   List or reveal stored history records")
	fmt.Println("  decode    Derive a password from a captured payload line")
	fmt.Println("  help      Show help for a command")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  kluchnik device -listen :8080       # Run the device simulator")
	fmt.Println("  kluchnik receive -device host:8080  # Fetch and store a password")
	fmt.Println("  kluchnik generate -quick -length 20 # Local generation, no gate timing")
	fmt.Println("  kluchnik history -reveal 3          # Show a stored password")
	fmt.Println()
	fmt.Println("Use 'kluchnik help <command>' for more information about a command.")
}

func printCommandHelp(command string) {
	switch command {
	case "device":
		fmt.Println("kluchnik device [-listen addr] [-seed n] [-ssid name] [-ap-pass secret]")
		fmt.Println()
		fmt.Println("Runs the simulated Kluchnik device. The 128x64 panel is drawn on")
		fmt.Println("the terminal; arrow keys (or k/j) move the menu, enter selects,")
		fmt.Println("q quits. A TCP server accepts companion connections and serves the")
		fmt.Println("GET_DATA, CMD_UP, CMD_DOWN and CMD_SELECT commands.")
		fmt.Println()
		fmt.Println("Generation blocks for ~200ms per entropy byte, exactly like the")
		fmt.Println("hardware: a 16-character password takes at least 3.2 seconds.")
	case "generate":
		fmt.Println("kluchnik generate [-length n] [-complexity policy] [-quick] [-seed n]")
		fmt.Println()
		fmt.Println("Runs one generation cycle locally and prints the password and the")
		fmt.Println("transport payload line. Without -quick the simulated entropy gate")
		fmt.Println("is used with its real timing budget.")
		fmt.Println()
		fmt.Println("Policies: numbers, numbers+lower, letters+numbers, printable")
	case "receive":
		fmt.Println("kluchnik receive [-device host:port] [-vault path] [-keyring] [-no-store]")
		fmt.Println()
		fmt.Println("Connects to a device, requests a generation cycle, decrypts the")
		fmt.Println("transported entropy key and derives the password. Unless -no-store")
		fmt.Println("is given the result is sealed into the history vault.")
		fmt.Println()
		fmt.Println("The vault passphrase is read from KLUCHNIK_PASSPHRASE, the OS")
		fmt.Println("keyring (-keyring), or an interactive prompt.")
	case "history":
		fmt.Println("kluchnik history [-vault path] [-keyring] [-reveal id] [-forget-passphrase]")
		fmt.Println()
		fmt.Println("Lists the history vault records. Headers (time, device, length,")
		fmt.Println("policy) are stored unencrypted; the password of a record is only")
		fmt.Println("decrypted with -reveal. -forget-passphrase removes the stashed")
		fmt.Println("vault passphrase from the OS keyring and exits.")
	case "decode":
		fmt.Println("kluchnik decode [-payload line] [-qr]")
		fmt.Println()
		fmt.Println("Derives a password from a captured LEN:..,COMPLEX:..,KEY:.. payload")
		fmt.Println("line without contacting a device. Reads stdin when -payload is")
		fmt.Println("empty. -qr renders the result as a scannable symbol.")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
	}
}
