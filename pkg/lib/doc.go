// Package lib provides a Go SDK to run janosik programs and manage task protips
// without shelling out to the janosik CLI binary.
//
// # Quick Start
//
//	client, err := lib.New(ctx, lib.Config{BinDir: "/opt/janosik/bin"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	res, err := client.Run(ctx, "sort", "3 1 2")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Print(res.Output)
//
// # Runs
//
// A program is an executable named exactly like the run program inside the
// bin directory. The input is staged in a per-run file and fed as the program
// standard input, the standard output is the result. Runs fail with one of:
//
//   - [ErrNoInput]: the input was empty, nothing was executed.
//   - [ErrTimeout]: the program ran past the deadline and was killed.
//   - [ErrProgramNotFound]: the program name is invalid, not allowed or could not be started.
//   - [ErrNoOutput]: the program exited cleanly without printing anything.
//   - [ErrCrash]: the program exited with a non-zero status or was killed by a signal.
//   - [ErrOther]: any other staging or capture problem.
//
// [Client.Blackbox] does the same from a chat message ("sort ```3 1 2```") and
// returns the reply text rendered in the configured language.
//
// # Protips
//
// Protips are short hints attached to a task:
//
//	p, _ := client.AddProtip(ctx, "zad1", "use uint64")
//	protips, _ := client.ListProtips(ctx, "zad1")
//	tasks, _ := client.ListTasks(ctx)
//	client.RemoveProtip(ctx, p.ID)
//
// # Error Handling
//
// All methods return errors that can be inspected with [errors.Is]:
//
//   - [ErrNotFound]: Resource does not exist.
//   - [ErrAlreadyExists]: Resource with the same identity already exists.
//   - [ErrNotValid]: Invalid input.
//
// # Testing
//
// Use [StorageMemory] to keep protips in memory:
//
//	client, _ := lib.New(ctx, lib.Config{
//	    BinDir:  binDir,
//	    Storage: lib.StorageMemory,
//	})
//	defer client.Close()
//
// # Thread Safety
//
// A [Client] is safe for concurrent use from multiple goroutines. Every run
// stages its input in its own file.
package lib
