// Package banner draws the application title to stdout.
package banner

import (
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"

	"github.com/vguler/aws-ops-toolkit/shared/ansi"
	"github.com/vguler/aws-ops-toolkit/shared/console"
)

type bannerColor int

const (
	bannerAmazonOrange bannerColor = iota
	bannerIBMBlue
	bannerSpotifyGreen
	bannerNetflixRed
	bannerTwitchPurple
	bannerSkypeBlue
	bannerFantaOrange
	bannerAndroidGreen
)

var bannerTitleColors = []string{
	"\x1b[38;2;255;153;0m",  // Amazon Orange
	"\x1b[38;2;15;98;254m",  // IBM Blue
	"\x1b[38;2;30;215;96m",  // Spotify Green
	"\x1b[38;2;229;9;20m",   // Netflix Red
	"\x1b[38;2;145;70;255m", // Twitch Purple
	"\x1b[38;2;0;175;240m",  // Skype Blue
	"\x1b[38;2;255;114;0m",  // Fanta Orange
	"\x1b[38;2;61;220;132m", // Android Green
}

var bannerTitleColorNames = []string{
	"AmazonOrange",
	"IBMBlue",
	"SpotifyGreen",
	"NetflixRed",
	"TwitchPurple",
	"SkypeBlue",
	"FantaOrange",
	"AndroidGreen",
}

const (
	bannerTitleColorDefault        = bannerAmazonOrange
	bannerTitleColorBlueBackground = bannerAndroidGreen
	bannerTitleColorEnv            = "AWS_OPS_TOOLKIT_BANNER_COLOR"
)

var titleLines = []string{
	"  █████╗  ██╗    ██╗ ███████╗         ██████╗  ██████╗  ███████╗",
	" ██╔══██╗ ██║    ██║ ██╔════╝        ██╔═══██╗ ██╔══██╗ ██╔════╝",
	" ███████║ ██║ █╗ ██║ ███████╗ █████╗ ██║   ██║ ██████╔╝ ███████╗",
	" ██╔══██║ ██║███╗██║ ╚════██║ ╚════╝ ██║   ██║ ██╔═══╝  ╚════██║",
	" ██║  ██║ ╚███╔███╔╝ ███████║        ╚██████╔╝ ██║      ███████║",
	" ╚═╝  ╚═╝  ╚══╝╚══╝  ╚══════╝         ╚═════╝  ╚═╝      ╚══════╝",
}

func printCenteredLines(lines []string, width int) {
	for _, line := range lines {
		pad := 0

		if n := utf8.RuneCountInString(line); width > n {
			pad = (width - n) / 2
		}

		if pad > 0 {
			fmt.Print(strings.Repeat(" ", pad))
		}

		fmt.Println(line)
	}
}

func bannerTitleColor() bannerColor {
	if color, ok := bannerTitleColorFromEnv(); ok {
		return color
	}

	if console.IsBlueBackground() {
		return bannerTitleColorBlueBackground
	}

	return bannerTitleColorDefault
}

func bannerTitleColorFromEnv() (bannerColor, bool) {
	raw := strings.TrimSpace(os.Getenv(bannerTitleColorEnv))
	if raw == "" {
		return 0, false
	}

	for idx, color := range bannerTitleColors {
		if strings.EqualFold(raw, bannerTitleColorNames[idx]) || raw == color {
			return bannerColor(idx), true
		}
	}

	return 0, false
}

// DrawBannerTitle prints the application title banner to stdout.
func DrawBannerTitle() {
	ansi.EnableANSI()

	width := 80

	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
	}

	fmt.Print(bannerTitleColors[bannerTitleColor()])
	printCenteredLines(titleLines, width)
	fmt.Print("\x1b[0m")
}
