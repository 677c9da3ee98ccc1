package commands

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TianweiOwenLi/TaggyTime/calendar"
)

var AddCalCmd = &cobra.Command{
	Use:   "add-cal [file.ics]",
	Short: "Load an .ics calendar into the environment",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()
		name, events, err := calendar.LoadICS(args[0], e.TZ)
		if err != nil {
			fail(err)
		}
		if err := e.Calendars.Add(name, events); err != nil {
			fail(err)
		}
		saveEnv(e)
		fmt.Printf("[taggytime] Loaded calendar `%s` with %d events\n", name, len(events))
	},
}

var RmCalCmd = &cobra.Command{
	Use:   "rm-cal [name]",
	Short: "Remove a loaded calendar",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()
		if !e.Calendars.Remove(args[0]) {
			fmt.Printf("[taggytime] There is no calendar `%s`\n", args[0])
			return
		}
		saveEnv(e)
		fmt.Printf("[taggytime] Removed calendar `%s`\n", args[0])
	},
}

var CalsCmd = &cobra.Command{
	Use:   "cals",
	Short: "List loaded calendars",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "Calendar\tEvents")
		for _, name := range e.Calendars.Names() {
			events, _ := e.Calendars.Events(name)
			fmt.Fprintf(w, "%s\t%d\n", name, len(events))
		}
		w.Flush()
	},
}

var EventsCmd = &cobra.Command{
	Use:   "events [calendar]",
	Short: "List events, of one calendar or of all",
	Args:  cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()

		names := e.Calendars.Names()
		if len(args) == 1 {
			if !e.Calendars.Contains(args[0]) {
				fmt.Printf("[taggytime] There is no calendar `%s`\n", args[0])
				return
			}
			names = args[:1]
		}

		for _, name := range names {
			events, _ := e.Calendars.Events(name)
			fmt.Printf("%s:\n", name)
			for _, ev := range events {
				fmt.Printf("  %v\n", ev)
			}
		}
	},
}
