package cmd

func init() {
	RegisterCommand(&Command{
		Name:  "version",
		Short: "Show version information",
		Long:  "Print the terra version and build time.",
		Usage: "terra version",
		Run: func(args []string) error {
			printVersion()
			return nil
		},
	})
}
