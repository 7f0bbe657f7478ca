package commands

import (
	"Blogicum/internal/api/dto"
	"Blogicum/internal/pkg/util"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	locationName   string
	locationHidden bool
)

var locationCmd = &cobra.Command{
	Use:   "location",
	Short: "Manage locations",
}

var locationCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a location",
	RunE: func(cmd *cobra.Command, args []string) error {
		published := !locationHidden
		req := &dto.LocationFormDTO{Name: locationName, IsPublished: &published}
		if err := util.ValidateDTO(req); err != nil {
			return fmt.Errorf("invalid location: %v", util.FieldErrors(err))
		}

		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close()

		location, err := svc.locations.CreateLocation(commandContext(cmd), svc.viewer, req)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "created location %d (%s)\n", location.ID, location.Name)
		return nil
	},
}

var locationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all locations",
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := openServices(cmd)
		if err != nil {
			return err
		}
		defer svc.close()

		locations, err := svc.locations.ListAll(commandContext(cmd), svc.viewer)
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		_, _ = fmt.Fprintln(w, "ID\tNAME\tPUBLISHED")
		for _, loc := range locations {
			_, _ = fmt.Fprintf(w, "%d\t%s\t%t\n", loc.ID, loc.Name, loc.IsPublished)
		}
		return w.Flush()
	},
}

func init() {
	locationCreateCmd.Flags().StringVar(&locationName, "name", "", "Location name")
	locationCreateCmd.Flags().BoolVar(&locationHidden, "hidden", false, "Create the location unpublished")
	_ = locationCreateCmd.MarkFlagRequired("name")

	locationCmd.AddCommand(locationCreateCmd, locationListCmd)
	rootCmd.AddCommand(locationCmd)
}
