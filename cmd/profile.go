package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/prepcoach/internal/profile"
	"github.com/abhisek/prepcoach/internal/store"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show or update your interview profile",
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, u, err := setupLocal(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		printProfile(cmd, u)
		return nil
	},
}

var profileSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Update your profile; unset flags keep their current value",
	Example: "  prepcoach profile set --industry tech-software-development --skills go,postgres --experience 4",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, u, err := setupLocal(cmd)
		if err != nil {
			return err
		}
		defer d.close()

		in := profile.Input{
			Industry:   u.Industry,
			Experience: u.Experience,
			Bio:        u.Bio,
			Skills:     u.Skills,
		}
		flags := cmd.Flags()
		if flags.Changed("industry") {
			in.Industry, _ = flags.GetString("industry")
		}
		if flags.Changed("experience") {
			years, _ := flags.GetInt("experience")
			in.Experience = &years
		}
		if flags.Changed("bio") {
			in.Bio, _ = flags.GetString("bio")
		}
		if flags.Changed("skills") {
			in.Skills, _ = flags.GetStringSlice("skills")
		}

		updated, err := d.profiles.Update(cmd.Context(), in)
		var verr *profile.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid profile: %s", describeFields(verr.Fields))
		}
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), "Profile updated.")
		printProfile(cmd, updated)
		return nil
	},
}

func printProfile(cmd *cobra.Command, u *store.User) {
	out := cmd.OutOrStdout()
	industry := u.Industry
	if industry == "" {
		industry = "(not set)"
	}
	fmt.Fprintf(out, "User:        %s\n", u.ExternalID)
	if u.Name != "" && u.Name != u.ExternalID {
		fmt.Fprintf(out, "Name:        %s\n", u.Name)
	}
	fmt.Fprintf(out, "Industry:    %s\n", industry)
	if u.Experience != nil {
		fmt.Fprintf(out, "Experience:  %d years\n", *u.Experience)
	}
	if len(u.Skills) > 0 {
		fmt.Fprintf(out, "Skills:      %s\n", strings.Join(u.Skills, ", "))
	}
	if u.Bio != "" {
		fmt.Fprintf(out, "Bio:         %s\n", u.Bio)
	}
	fmt.Fprintf(out, "Onboarded:   %v\n", profile.IsOnboarded(u))
}

func describeFields(fields map[string]string) string {
	parts := make([]string, 0, len(fields))
	for field, rule := range fields {
		parts = append(parts, fmt.Sprintf("%s (%s)", field, rule))
	}
	sort.Strings(parts)
	return strings.Join(parts, ", ")
}

func init() {
	profileSetCmd.Flags().String("industry", "", "Industry, e.g. tech-software-development")
	profileSetCmd.Flags().Int("experience", 0, "Years of experience")
	profileSetCmd.Flags().String("bio", "", "Short bio")
	profileSetCmd.Flags().StringSlice("skills", nil, "Comma-separated skills")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileSetCmd)
}
