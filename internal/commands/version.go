package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/flaskstudio/flaskstudio"
)

// VersionCmd creates and returns the 'version' command
func VersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the Flask Studio version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("flaskstudio " + flaskstudio.Version)
		},
	}
}
