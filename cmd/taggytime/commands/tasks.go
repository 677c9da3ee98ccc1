package commands

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/TianweiOwenLi/TaggyTime/calendar"
	"github.com/TianweiOwenLi/TaggyTime/mintime"
	"github.com/TianweiOwenLi/TaggyTime/refine"
)

var AddTaskCmd = &cobra.Command{
	Use:   "add-task [name] [minutes] [due...]",
	Short: "Add a task with a workload in minutes and a due time",
	Long: `Add a task. The due time is given as date arguments, for example:

  taggytime add-task hw413 300 2023/3/14 21:11
  taggytime add-task thesis 2000 5/1 12:00 -4:00`,
	Args: cobra.MinimumNArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()

		minutes, err := strconv.ParseUint(args[1], 10, 32)
		if err != nil {
			fail(fmt.Errorf("workload %q is not a number: %w", args[1], err))
		}
		length, err := calendar.NewWorkload(uint32(minutes))
		if err != nil {
			fail(err)
		}

		due, err := mintime.ParseDate(args[2:], e.TZ)
		if err != nil {
			fail(err)
		}
		dueInstant, err := mintime.FromDate(due)
		if err != nil {
			fail(err)
		}

		if err := e.Tasks.UniqueInsert(args[0], calendar.NewTask(dueInstant, length)); err != nil {
			fail(err)
		}
		saveEnv(e)
		fmt.Printf("[taggytime] Added task `%s` due %s\n", args[0], due.NoTZString())
	},
}

var RmTaskCmd = &cobra.Command{
	Use:   "rm-task [name]",
	Short: "Remove a task",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()
		if !e.Tasks.Remove(args[0]) {
			fmt.Printf("[taggytime] There is no task `%s`\n", args[0])
			return
		}
		saveEnv(e)
		fmt.Printf("[taggytime] Removed task `%s`\n", args[0])
	},
}

var SetProgressCmd = &cobra.Command{
	Use:   "set-progress [name] [percent]",
	Short: "Set how much of a task is done",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()
		task, ok := e.Tasks.Get(args[0])
		if !ok {
			fmt.Printf("[taggytime] There is no task `%s`\n", args[0])
			return
		}
		progress, err := refine.ParsePercent(args[1])
		if err != nil {
			fail(err)
		}
		task.SetProgress(progress)
		saveEnv(e)
		fmt.Printf("[taggytime] Progress of `%s` set to %v\n", args[0], task.Completion)
	},
}

var ImpactCmd = &cobra.Command{
	Use:   "impact",
	Short: "Show each task's impact on the remaining free time",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		e := loadEnv()
		now := mintime.Now(e.TZ)

		type row struct {
			name   string
			task   *calendar.Task
			impact calendar.Impact
		}
		rows := make([]row, 0, e.Tasks.Len())
		for _, name := range e.Tasks.Names() {
			task, _ := e.Tasks.Get(name)
			rows = append(rows, row{name: name, task: task, impact: e.Calendars.Impact(now, task)})
		}
		sort.SliceStable(rows, func(i, j int) bool {
			return rows[i].impact.Heavier(rows[j].impact)
		})

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintf(w, "Task\tDue (tz=%v)\tWorkload\tProgress\tImpact\n", e.TZ)
		var sum refine.Percent
		for _, r := range rows {
			fmt.Fprintf(w, "%s\t%s\t%v\t%v\t%v\n",
				r.name, r.task.Due.In(e.TZ).Date().NoTZString(),
				r.task.Length, r.task.Completion, r.impact)
			if !r.impact.IsExpired() {
				if s, err := sum.Add(r.impact.Load()); err == nil {
					sum = s
				}
			}
		}
		w.Flush()
		fmt.Printf("\nSum of impact: %v\n", sum)
	},
}
