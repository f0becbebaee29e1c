// Command-line linter for Johan Chat package directories.
package main

import (
	"fmt"
	"os"

	"johan/johan/pkghost"
)

func main() {
	args := os.Args[1:]
	if len(args) < 2 {
		usage()
		os.Exit(1)
	}

	switch args[0] {
	case "lint":
		rep := pkghost.Lint(args[1])
		printReport(rep)
		if !rep.OK() {
			os.Exit(1)
		}
	case "scan":
		reports, err := pkghost.NewLoader(args[1]).Scan()
		if err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
		if len(reports) == 0 {
			fmt.Println("no packages found")
			return
		}
		failed := false
		for _, rep := range reports {
			printReport(rep)
			if !rep.OK() {
				failed = true
			}
		}
		if failed {
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func printReport(rep pkghost.Report) {
	name := rep.Name
	if name == "" {
		name = "<unknown>"
	}
	if rep.OK() {
		fmt.Printf("ok   %s (%s)\n", name, rep.Dir)
		return
	}
	fmt.Printf("FAIL %s (%s)\n", name, rep.Dir)
	for _, p := range rep.Problems {
		fmt.Printf("     - %s\n", p)
	}
}

func usage() {
	fmt.Println("johanpkg usage:")
	fmt.Println("  johanpkg lint <package-dir>    # validate one package directory")
	fmt.Println("  johanpkg scan <packages-dir>   # validate every package under a directory")
}
