package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/TianweiOwenLi/TaggyTime/mintime"
)

var NowCmd = &cobra.Command{
	Use:   "now",
	Short: "Show the current time in the environment's timezone",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()
		fmt.Printf("[taggytime] %v\n", mintime.Now(e.TZ))
	},
}

var TzCmd = &cobra.Command{
	Use:   "tz",
	Short: "Show the environment's timezone",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()
		fmt.Printf("[taggytime] tz=%v\n", e.TZ)
	},
}

var SetTzCmd = &cobra.Command{
	Use:   "set-tz [offset]",
	Short: "Set the environment's timezone, e.g. -4:00 or +8",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()
		tz, err := mintime.ParseZoneOffset(args[0])
		if err != nil {
			fail(err)
		}
		e.TZ = tz
		saveEnv(e)
		fmt.Printf("[taggytime] tz set to %v\n", tz)
	},
}

var TruncateCmd = &cobra.Command{
	Use:   "truncate",
	Short: "Drop event occurrences that already ended",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()
		e.Calendars.Truncate(mintime.Now(e.TZ))
		saveEnv(e)
		fmt.Println("[taggytime] Calendars truncated")
	},
}
