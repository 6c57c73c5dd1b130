// cmd/tools/registry-check/main.go
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	apperrors "adoption-workers/internal/common/errors"
	"adoption-workers/internal/common/validation"
	"adoption-workers/pkg/registry"
)

func main() {
	validateCmd := flag.NewFlagSet("validate", flag.ExitOnError)
	listCmd := flag.NewFlagSet("list", flag.ExitOnError)

	validatePath := validateCmd.String("path", "configs/activity-registry.json", "Path to registry file")
	listPath := listCmd.String("path", "configs/activity-registry.json", "Path to registry file")
	onlyImplemented := listCmd.Bool("implemented", false, "Only list activities served by the worker manager")

	if len(os.Args) < 2 {
		help()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "validate":
		validateCmd.Parse(os.Args[2:])
		problems, err := checkRegistry(*validatePath)
		if err != nil {
			fmt.Printf("Registry validation failed: %v\n", err)
			os.Exit(1)
		}
		if len(problems) > 0 {
			for _, p := range problems {
				fmt.Printf("  - %s\n", p)
			}
			fmt.Printf("Registry validation failed with %d problem(s).\n", len(problems))
			os.Exit(1)
		}
		fmt.Println("Registry validation passed.")

	case "list":
		listCmd.Parse(os.Args[2:])
		reg, err := registry.LoadRegistry(*listPath)
		if err != nil {
			fmt.Printf("Error loading registry: %v\n", err)
			os.Exit(1)
		}
		listActivities(os.Stdout, reg, *onlyImplemented)

	case "help":
		fallthrough
	default:
		help()
	}
}

// checkRegistry loads the registry and reports every activity that the worker
// manager would reject or misreport at startup.
func checkRegistry(path string) ([]string, error) {
	reg, err := registry.LoadRegistry(path)
	if err != nil {
		return nil, err
	}
	if len(reg.Activities) == 0 {
		return nil, fmt.Errorf("registry contains no activities")
	}

	var problems []string
	schemas := validation.NewSchemaValidator()
	for _, a := range reg.Activities {
		if a.ID == "" {
			problems = append(problems, fmt.Sprintf("activity %s: missing id", a.TaskType))
		}
		if a.DisplayName == "" {
			problems = append(problems, fmt.Sprintf("activity %s: missing displayName", a.TaskType))
		}
		if err := schemas.Register(a.TaskType, a.InputSchema); err != nil {
			problems = append(problems, fmt.Sprintf("activity %s: %v", a.TaskType, err))
		}
		for _, code := range a.ErrorCodes {
			if _, ok := apperrors.BPMNErrorMapping[apperrors.ErrorCode(code)]; !ok {
				problems = append(problems, fmt.Sprintf("activity %s: unknown error code %s", a.TaskType, code))
			}
		}
		if a.ImplementationStatus == registry.StatusImplemented && len(a.InputSchema) == 0 {
			problems = append(problems, fmt.Sprintf("activity %s: implemented without an inputSchema", a.TaskType))
		}
	}
	return problems, nil
}

func listActivities(w io.Writer, reg *registry.ActivityRegistry, onlyImplemented bool) {
	activities := reg.Activities
	if onlyImplemented {
		activities = reg.Implemented()
	}
	sorted := append([]registry.Activity(nil), activities...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].TaskType < sorted[j].TaskType })

	for _, a := range sorted {
		fmt.Fprintf(w, "%-36s %-12s timeout=%-5s retries=%d codes=%s\n",
			a.TaskType, a.ImplementationStatus, a.Timeout, a.Retries, strings.Join(a.ErrorCodes, ","))
	}
	fmt.Fprintf(w, "%d activities\n", len(sorted))
}

func help() {
	fmt.Print(`
Usage: registry-check <command> [flags]

Commands:
  validate  Check the registry file: task types, timeouts, input schemas and error codes
  list      Print the registered activities
  help      Show this help message

Examples:
  registry-check validate -path configs/activity-registry.json
  registry-check list -implemented

Use 'registry-check <command> -h' for more information about a command.

`)
}
