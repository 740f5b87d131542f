package main

import (
	"context"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/SakuraBurst/rewards/internal/rewards/controller"
	"github.com/SakuraBurst/rewards/internal/rewards/gateway"
	"github.com/SakuraBurst/rewards/internal/rewards/types"
	"github.com/dustin/go-humanize"
	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

func points(d decimal.Decimal) string {
	if d.IsInteger() {
		return humanize.Comma(d.IntPart())
	}
	return humanize.Commaf(d.InexactFloat64())
}

func table(ct *cli.Context) *tabwriter.Writer {
	return tabwriter.NewWriter(ct.App.Writer, 0, 0, 2, ' ', 0)
}

func firstArg(ct *cli.Context, name string) (string, error) {
	if ct.NArg() < 1 || ct.Args().First() == "" {
		return "", gateway.Required(name)
	}
	return ct.Args().First(), nil
}

func (c *console) profile(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	user, err := sess.Profile.Refresh(ct.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(ct.App.Writer, "%s %s (@%s)\n", user.FirstName, user.LastName, user.Username)
	fmt.Fprintf(ct.App.Writer, "points:    %s\n", points(user.Points))
	fmt.Fprintf(ct.App.Writer, "level:     %d\n", user.Level)
	fmt.Fprintf(ct.App.Writer, "streak:    %d days\n", user.Streak)
	fmt.Fprintf(ct.App.Writer, "referrals: %d\n", user.Referrals)
	if sess.Admin {
		fmt.Fprintln(ct.App.Writer, "admin screens available")
	}
	return nil
}

func (c *console) checkin(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	res, err := sess.Profile.Checkin(ct.Context)
	if err != nil {
		return err
	}
	fmt.Fprintf(ct.App.Writer, "+%d points", res.Bonus)
	if res.User != nil {
		fmt.Fprintf(ct.App.Writer, ", balance %s, streak %d", points(res.User.Points), res.User.Streak)
	}
	fmt.Fprintln(ct.App.Writer)
	return nil
}

func (c *console) leaderboard(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	entries, err := sess.Profile.Leaderboard(ct.Context, ct.Int("limit"))
	if err != nil {
		return err
	}
	w := table(ct)
	fmt.Fprintln(w, "#\tNAME\tPOINTS\tLEVEL")
	for i, e := range entries {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\n", humanize.Ordinal(i+1), e.Name, points(e.Points), e.Level)
	}
	return w.Flush()
}

func (c *console) referrals(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	resp, err := sess.Profile.Referrals(ct.Context)
	if err != nil {
		return err
	}
	if resp.Link != "" {
		fmt.Fprintln(ct.App.Writer, "invite link:", resp.Link)
	}
	w := table(ct)
	fmt.Fprintln(w, "NAME\tJOINED\tBONUS")
	for _, r := range resp.Referrals {
		fmt.Fprintf(w, "%s\t%s\t%d\n", r.Name, humanize.Time(r.JoinedAt), r.Bonus)
	}
	return w.Flush()
}

func (c *console) history(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	resp, err := sess.Profile.History(ct.Context, ct.Int("limit"), ct.Int("offset"))
	if err != nil {
		return err
	}
	w := table(ct)
	fmt.Fprintln(w, "WHEN\tAMOUNT\tREASON")
	for _, h := range resp.History {
		fmt.Fprintf(w, "%s\t%s\t%s\n", humanize.Time(h.CreatedAt), points(h.Amount), h.Reason)
	}
	return w.Flush()
}

func (c *console) printTasks(ct *cli.Context, tasks *controller.Tasks, list []*types.Task) error {
	w := table(ct)
	fmt.Fprintln(w, "ID\tTITLE\tPOINTS\tSTATUS\tNEXT\tGROUP")
	for _, t := range list {
		view := tasks.View(t)
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\t%s\n",
			t.ID, t.Title, t.Points, t.EffectiveStatus(), view.Affordance,
			types.CategoryOf(t, c.cfg.Content.LegacyCategoryFallback))
	}
	return w.Flush()
}

func (c *console) tasks(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	list, more, err := sess.Tasks.LoadTasks(ct.Context, types.TaskFilter{
		NetworkID: ct.String("network"),
		Type:      types.TaskType(ct.String("type")),
		Page:      1,
		PageSize:  c.cfg.Content.ContentPageSize,
	})
	if err != nil {
		return err
	}
	if err := c.printTasks(ct, sess.Tasks, list); err != nil {
		return err
	}
	if more {
		fmt.Fprintln(ct.App.Writer, "more tasks available")
	}
	return nil
}

// CLI не хранит состояние между запусками, поэтому статус задачи сначала берем с сервера
func (c *console) start(ct *cli.Context) error {
	id, err := firstArg(ct, "task_id")
	if err != nil {
		return err
	}
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	if _, err := sess.Tasks.Lookup(ct.Context, id, c.cfg.Content.ContentPageSize); err != nil {
		return err
	}
	task, err := sess.Tasks.StartTask(ct.Context, id)
	if err != nil {
		return err
	}
	fmt.Fprintf(ct.App.Writer, "task %s is %s, run `check %s` when done\n", task.ID, task.Status, task.ID)
	return nil
}

func (c *console) check(ct *cli.Context) error {
	id, err := firstArg(ct, "task_id")
	if err != nil {
		return err
	}
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	var verification map[string]any
	if code := ct.String("code"); code != "" {
		verification = map[string]any{"code": code}
	}
	if _, err := sess.Tasks.Lookup(ct.Context, id, c.cfg.Content.ContentPageSize); err != nil {
		return err
	}
	res, err := sess.Tasks.CheckTask(ct.Context, id, verification)
	if err != nil {
		return err
	}
	if !res.Completed {
		fmt.Fprintln(ct.App.Writer, res.Message)
		return nil
	}
	fmt.Fprintf(ct.App.Writer, "completed: +%d points", res.Points)
	if res.User != nil {
		fmt.Fprintf(ct.App.Writer, ", balance %s", points(res.User.Points))
	}
	fmt.Fprintln(ct.App.Writer)
	return nil
}

func (c *console) content(ct *cli.Context) error {
	tab := types.ContentType(ct.Args().First())
	if tab == "" {
		tab = types.ContentTasks
	}
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	if err := sess.Pager.SwitchTab(tab); err != nil {
		return err
	}
	var view controller.PagerView
	for i := 0; i < ct.Int("pages"); i++ {
		view, err = sess.Pager.LoadMore(ct.Context, true)
		if errors.Is(err, controller.ErrLoadSkipped) {
			break
		}
		if err != nil {
			return err
		}
	}
	for _, section := range view.Sections {
		fmt.Fprintf(ct.App.Writer, "== %s (%s)\n", section.Network.Name, section.Network.ID)
		switch tab {
		case types.ContentTasks:
			if err := c.printTasks(ct, sess.Tasks, section.Tasks); err != nil {
				return err
			}
		case types.ContentGames:
			for _, g := range section.Games {
				fmt.Fprintf(ct.App.Writer, "  %s  %s  %d pts  played %s times\n", g.ID, g.Title, g.Points, humanize.Comma(int64(g.PlayCount)))
			}
		case types.ContentSurveys:
			for _, s := range section.Surveys {
				fmt.Fprintf(ct.App.Writer, "  %s  %s  %d pts  ~%d min  %d/%d responses\n",
					s.ID, s.Title, s.Points, s.EstimatedTime, s.CurrentResponses, s.MaxResponses)
			}
		}
	}
	if view.EndOfList {
		fmt.Fprintln(ct.App.Writer, "-- end of list --")
	}
	return nil
}

func (c *console) play(ct *cli.Context) error {
	id, err := firstArg(ct, "game_id")
	if err != nil {
		return err
	}
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	url, err := sess.Games.Play(ct.Context, id)
	if err != nil {
		return err
	}
	fmt.Fprintln(ct.App.Writer, url)
	return nil
}

func (c *console) spin(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	spin := sess.OpenSpin()
	defer sess.CloseSpin()

	if _, err := spin.Spin(ct.Context); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ct.Context, c.cfg.Spin.Duration+5*time.Second)
	defer cancel()
	var last controller.SpinState
	for st := range spin.Animate(ctx, c.cfg.Spin.FrameInterval) {
		fmt.Fprint(ct.App.Writer, "\r"+renderRing(st))
		last = st
	}
	fmt.Fprintln(ct.App.Writer)
	if last.Phase != controller.PhaseSettled || last.WonAmount == nil {
		return errors.New("spin animation interrupted")
	}
	fmt.Fprintf(ct.App.Writer, "you won %d points", *last.WonAmount)
	if last.User != nil {
		fmt.Fprintf(ct.App.Writer, ", balance %s", points(last.User.Points))
	}
	fmt.Fprintln(ct.App.Writer)
	return nil
}

func (c *console) shop(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	rewards, err := sess.Shop.Rewards(ct.Context)
	if err != nil {
		return err
	}
	w := table(ct)
	fmt.Fprintln(w, "ID\tNAME\tCATEGORY\tCOST")
	for _, r := range rewards {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", r.ID, r.Name, r.Category, points(r.Cost))
	}
	return w.Flush()
}

func (c *console) redeem(ct *cli.Context) error {
	id, err := firstArg(ct, "reward_id")
	if err != nil {
		return err
	}
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	if _, err := sess.Profile.Refresh(ct.Context); err != nil {
		return err
	}
	user, err := sess.Shop.Redeem(ct.Context, id)
	if err != nil {
		return err
	}
	fmt.Fprint(ct.App.Writer, "redeemed")
	if user != nil {
		fmt.Fprintf(ct.App.Writer, ", balance %s", points(user.Points))
	}
	fmt.Fprintln(ct.App.Writer)
	return nil
}

func (c *console) adminStats(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	stats, err := sess.Console.Stats(ct.Context)
	if err != nil {
		return err
	}
	w := table(ct)
	fmt.Fprintf(w, "users\t%s\n", humanize.Comma(int64(stats.TotalUsers)))
	fmt.Fprintf(w, "active 24h / 7d\t%s / %s\n", humanize.Comma(int64(stats.ActiveUsers24h)), humanize.Comma(int64(stats.ActiveUsers7d)))
	fmt.Fprintf(w, "referrals\t%s\n", humanize.Comma(int64(stats.TotalReferrals)))
	fmt.Fprintf(w, "tasks\t%s\n", humanize.Comma(int64(stats.TotalTasks)))
	done := stats.CompletedTasks
	fmt.Fprintf(w, "completed\tfollow %d, comment %d, watch %d, join %d, other %d\n", done.Follow, done.Comment, done.Watch, done.Join, done.Other)
	fmt.Fprintf(w, "points\t%s (avg %s)\n", points(stats.TotalPoints), points(stats.AvgPointsPerUser.Round(1)))
	return w.Flush()
}

func (c *console) adminTasks(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	tasks, err := sess.Console.Tasks(ct.Context)
	if err != nil {
		return err
	}
	w := table(ct)
	fmt.Fprintln(w, "ID\tNETWORK\tTYPE\tTITLE\tPOINTS\tACTIVE")
	for _, t := range tasks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%t\n", t.ID, t.NetworkID, t.Type, t.Title, t.Points, t.Active == 1)
	}
	return w.Flush()
}

func (c *console) adminNetworks(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	networks, err := sess.Console.Networks(ct.Context)
	if err != nil {
		return err
	}
	w := table(ct)
	fmt.Fprintln(w, "ID\tNAME\tTYPE\tPRIORITY\tACTIVE")
	for _, n := range networks {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%t\n", n.ID, n.Name, n.Type, n.Priority, n.Active == 1)
	}
	return w.Flush()
}

func (c *console) adminUsers(ct *cli.Context) error {
	sess, err := c.open(ct)
	if err != nil {
		return err
	}
	users, err := sess.Console.Users(ct.Context, ct.String("search"))
	if err != nil {
		return err
	}
	w := table(ct)
	fmt.Fprintln(w, "ID\tNAME\tPOINTS\tLEVEL\tBANNED")
	for _, u := range users {
		fmt.Fprintf(w, "%d\t%s %s\t%s\t%d\t%t\n", u.UserID, u.FirstName, u.LastName, points(u.Points), u.Level, u.Banned)
	}
	return w.Flush()
}
