package main

import (
	"os"

	"github.com/urfave/cli/v2"
)

var ctl console

func main() {
	app := cli.NewApp()
	app.Name = "rewardsctl"
	app.Usage = "drive the rewards client controllers from a terminal"
	app.Action = cli.ShowAppHelp
	app.Flags = []cli.Flag{
		&cli.StringFlag{Name: "config", EnvVars: []string{"CONFIG_PATH"}, Usage: "path to yaml config"},
		&cli.StringFlag{Name: "api-url", EnvVars: []string{"API_URL"}, Usage: "rewards api base url"},
		&cli.StringFlag{Name: "init-data", EnvVars: []string{"REWARDS_INIT_DATA"}, Usage: "raw platform init data"},
		&cli.StringFlag{Name: "log-level", Value: "warn", Usage: "log level for stderr"},
	}
	app.Before = ctl.load
	app.After = ctl.close
	app.Commands = []*cli.Command{
		{
			Action:   ctl.profile,
			Name:     "profile",
			Usage:    "Show points, level and streak",
			Category: "Profile",
		},
		{
			Action:   ctl.checkin,
			Name:     "checkin",
			Usage:    "Claim the daily check-in bonus",
			Category: "Profile",
		},
		{
			Action:   ctl.leaderboard,
			Name:     "leaderboard",
			Usage:    "Show top users",
			Flags:    []cli.Flag{&cli.IntFlag{Name: "limit", Value: 20}},
			Category: "Profile",
		},
		{
			Action:   ctl.referrals,
			Name:     "referrals",
			Usage:    "Show invited friends and the invite link",
			Category: "Profile",
		},
		{
			Action:   ctl.history,
			Name:     "history",
			Usage:    "Show points history",
			Flags:    []cli.Flag{&cli.IntFlag{Name: "limit", Value: 20}, &cli.IntFlag{Name: "offset"}},
			Category: "Profile",
		},
		{
			Action:   ctl.tasks,
			Name:     "tasks",
			Usage:    "List tasks of a network",
			Flags:    []cli.Flag{&cli.StringFlag{Name: "network", Required: true}, &cli.StringFlag{Name: "type"}},
			Category: "Tasks",
		},
		{
			Action:    ctl.start,
			Name:      "start",
			Usage:     "Start a task",
			ArgsUsage: "<taskID>",
			Category:  "Tasks",
		},
		{
			Action:    ctl.check,
			Name:      "check",
			Usage:     "Ask the server to verify a started task",
			ArgsUsage: "<taskID>",
			Flags:     []cli.Flag{&cli.StringFlag{Name: "code", Usage: "verification code posted as a comment"}},
			Category:  "Tasks",
		},
		{
			Action:    ctl.content,
			Name:      "content",
			Usage:     "Page through networks and their content",
			ArgsUsage: "<tasks|games|surveys>",
			Flags:     []cli.Flag{&cli.IntFlag{Name: "pages", Value: 1}},
			Category:  "Tasks",
		},
		{
			Action:    ctl.play,
			Name:      "play",
			Usage:     "Get the url of a game",
			ArgsUsage: "<gameID>",
			Category:  "Tasks",
		},
		{
			Action:   ctl.spin,
			Name:     "spin",
			Usage:    "Spin the daily wheel",
			Category: "Spin",
		},
		{
			Action:   ctl.shop,
			Name:     "shop",
			Usage:    "List shop rewards",
			Category: "Shop",
		},
		{
			Action:    ctl.redeem,
			Name:      "redeem",
			Usage:     "Redeem a shop reward",
			ArgsUsage: "<rewardID>",
			Category:  "Shop",
		},
		{
			Name:     "admin",
			Usage:    "Admin screens",
			Category: "Admin",
			Subcommands: []*cli.Command{
				{Action: ctl.adminStats, Name: "stats", Usage: "Show totals"},
				{Action: ctl.adminTasks, Name: "tasks", Usage: "List all tasks"},
				{Action: ctl.adminNetworks, Name: "networks", Usage: "List all networks"},
				{
					Action: ctl.adminUsers,
					Name:   "users",
					Usage:  "Search users",
					Flags:  []cli.Flag{&cli.StringFlag{Name: "search"}},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		ctl.fatal(err)
	}
}
