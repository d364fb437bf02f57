package main

import (
	"context"
	"fmt"
	"os"
	"sort"

	"github.com/mkessler/stemtutor/internal/client/apiclient"
	"github.com/mkessler/stemtutor/internal/client/cache"
	"github.com/mkessler/stemtutor/internal/client/state"
	"github.com/mkessler/stemtutor/internal/config"
	"github.com/mkessler/stemtutor/internal/logger"
	"github.com/mkessler/stemtutor/internal/models"
)

const usage = `usage: client <command> [args]

commands:
  courses              list courses (seeds sample data on first run)
  courses reload       discard local edits and reload the sample courses
  skills               print the skill tree grouped by level
  skills complete <id> mark a skill completed and bank its XP
  subjects             fetch and print subjects from the server
  subjects add <name>  create a subject on the server
  cards                fetch and print flashcards from the server
  review <id> <y|n>    record a flashcard review result
  progress             fetch and print learner progress
  topics [touch <t>]   show recent topics, or move one to the front
`

func main() {
	cfg := config.Load()
	logger.SetDefault(logger.New(
		logger.WithLevel(logger.ParseLevel(cfg.LogLevel)),
		logger.WithOutput(os.Stderr),
	))

	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx := context.Background()
	api := apiclient.New(cfg.APIBaseURL)

	db, err := cache.Open(cfg.CacheDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open cache: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := run(ctx, os.Args[1:], api, db); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, api *apiclient.Client, db *cache.Cache) error {
	switch args[0] {
	case "courses":
		return runCourses(ctx, args[1:], db)
	case "skills":
		return runSkills(ctx, args[1:], db)
	case "subjects":
		return runSubjects(ctx, args[1:], api)
	case "cards":
		return runCards(ctx, api)
	case "review":
		return runReview(ctx, args[1:], api)
	case "progress":
		return runProgress(ctx, api)
	case "topics":
		return runTopics(ctx, args[1:], db)
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func runCourses(ctx context.Context, args []string, db *cache.Cache) error {
	library := state.NewCourseLibrary(db)
	if len(args) > 0 && args[0] == "reload" {
		if err := library.ReloadSamples(ctx); err != nil {
			return err
		}
		fmt.Println("sample courses reloaded")
	} else if err := library.Load(ctx); err != nil {
		return err
	}

	courses := library.Courses()
	if len(courses) == 0 {
		fmt.Println("no courses yet")
		return nil
	}
	for _, c := range courses {
		shared := ""
		if c.IsShared {
			shared = " [shared]"
		}
		fmt.Printf("%s  %s (%s, %s)%s\n", c.ID, c.Title, c.Subject, c.Difficulty, shared)
		fmt.Printf("    %d/%d modules done, %d%% complete, ~%d min\n",
			c.CompletedModules(), len(c.Modules), c.CompletionPercent(), c.TotalTime)
	}
	return nil
}

func runSkills(ctx context.Context, args []string, db *cache.Cache) error {
	tree := state.NewSkillTree(db)
	if err := tree.Load(ctx); err != nil {
		return err
	}

	if len(args) >= 2 && args[0] == "complete" {
		xp, err := tree.Complete(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("skill completed, earned %d XP (total earned: %d)\n", xp, tree.EarnedXP())
		return nil
	}

	byLevel := tree.NodesByLevel()
	levels := make([]int, 0, len(byLevel))
	for level := range byLevel {
		levels = append(levels, level)
	}
	sort.Ints(levels)
	for _, level := range levels {
		fmt.Printf("level %d:\n", level)
		for _, n := range byLevel[level] {
			status := "locked"
			if n.IsCompleted {
				status = "completed"
			} else if n.IsUnlocked {
				status = fmt.Sprintf("%d%%", n.Progress)
			}
			fmt.Printf("  %s  %s (%s): %s\n", n.ID, n.Name, n.Subject, status)
		}
	}
	fmt.Printf("%d skills completed, %d XP earned\n", tree.CompletedCount(), tree.EarnedXP())
	return nil
}

func runSubjects(ctx context.Context, args []string, api *apiclient.Client) error {
	panel := state.NewSubjectPanel(api)
	if len(args) >= 2 && args[0] == "add" {
		subject, err := panel.Create(ctx, models.NewSubject{Name: args[1]})
		if err != nil {
			return err
		}
		fmt.Printf("subject created: %s\n", subject.ID)
	}

	panel.Refresh(ctx)
	for _, s := range panel.Subjects() {
		fmt.Printf("%s  %s (%d flashcards)\n", s.ID, s.Name, s.FlashcardCount)
	}
	return nil
}

func runCards(ctx context.Context, api *apiclient.Client) error {
	deck := state.NewFlashcardDeck(api)
	deck.Refresh(ctx)
	for _, c := range deck.Cards() {
		fmt.Printf("%s  [%s/%s] %s\n", c.ID, c.Subject, c.Difficulty, c.Question)
		fmt.Printf("    reviewed %d times, %d correct\n", c.TimesReviewed, c.CorrectCount)
	}
	fmt.Printf("deck accuracy: %d%%\n", deck.Accuracy())
	return nil
}

func runReview(ctx context.Context, args []string, api *apiclient.Client) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: review <id> <y|n>")
	}
	correct := args[1] == "y" || args[1] == "yes"

	card, err := api.ReviewFlashcard(ctx, args[0], correct)
	if err != nil {
		return err
	}
	fmt.Printf("reviewed: %d total, %d correct\n", card.TimesReviewed, card.CorrectCount)
	return nil
}

func runProgress(ctx context.Context, api *apiclient.Client) error {
	p, err := api.Progress(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("level %d, %d XP, %d day streak\n", p.Level, p.TotalXP, p.Streak)
	fmt.Printf("%d skills completed, %d achievements\n", len(p.CompletedSkills), len(p.Achievements))
	return nil
}

func runTopics(ctx context.Context, args []string, db *cache.Cache) error {
	topics := state.NewRecentTopics(db)
	if err := topics.Load(ctx); err != nil {
		return err
	}

	if len(args) >= 2 && args[0] == "touch" {
		if err := topics.Touch(ctx, args[1]); err != nil {
			return err
		}
	}

	if len(topics.Topics()) == 0 {
		fmt.Println("no recent topics")
		return nil
	}
	for i, t := range topics.Topics() {
		fmt.Printf("%2d. %s\n", i+1, t)
	}
	return nil
}
