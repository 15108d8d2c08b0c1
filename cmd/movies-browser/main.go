// movies-browser prints the genres of the movies API and the movies of each
// selected genre, in the order given.
//
// Usage:
//
//	MOVIES_API_BASE_URL=http://localhost:3333 go run ./cmd/movies-browser 3 1 5
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"github.com/mmdatafocus/storefront_backend/config"
	"github.com/mmdatafocus/storefront_backend/movies"
)

func printState(w io.Writer, state movies.State) {
	if state.Err != nil {
		fmt.Fprintf(w, "error: %v\n", state.Err)
		return
	}
	fmt.Fprintf(w, "== %s (%d) ==\n", state.SelectedGenre.Title, state.SelectedGenre.ID)
	for _, movie := range state.Movies {
		rating := "-"
		if len(movie.Ratings) > 0 {
			rating = movie.Ratings[0].Value
		}
		fmt.Fprintf(w, "%-12s %-40s %-10s %s\n", movie.ImdbID, movie.Title, movie.Runtime, rating)
	}
}

func printGenres(w io.Writer, genres []movies.Genre, selected int) {
	for _, genre := range genres {
		marker := " "
		if genre.ID == selected {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %3d %s\n", marker, genre.ID, genre.Title)
	}
}

// browse mounts the provider in ctx and walks through genreIds.
func browse(ctx context.Context, w io.Writer, genreIds []int) error {
	provider := movies.MustFromContext(ctx)

	if err := provider.Mount(ctx); err != nil {
		return fmt.Errorf("list genres: %w", err)
	}
	provider.Wait()
	state := provider.State()
	printGenres(w, state.Genres, state.SelectedGenreId)
	printState(w, state)

	for _, id := range genreIds {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		provider.SelectGenre(id)
		provider.Wait()
		printState(w, provider.State())
	}
	return nil
}

func main() {
	initial := flag.Int("initial", movies.DefaultGenreId, "Genre selected on start")
	flag.Parse()

	var genreIds []int
	for _, arg := range flag.Args() {
		id, err := strconv.Atoi(arg)
		if err != nil || id <= 0 {
			fmt.Fprintf(os.Stderr, "invalid genre id %q\n", arg)
			os.Exit(1)
		}
		genreIds = append(genreIds, id)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	provider := movies.NewProvider(movies.NewClient(),
		movies.WithLogger(config.GetLogger()),
		movies.WithInitialGenre(*initial),
	)
	defer provider.Close()

	if err := browse(movies.WithProvider(ctx, provider), os.Stdout, genreIds); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
