package cmd

import (
	"fmt"

	"github.com/alterego-vtt/alterego/pkg/aedb"
	"github.com/alterego-vtt/alterego/pkg/aedb/aemodel"
	"github.com/alterego-vtt/alterego/pkg/aedb/stor"
	"github.com/alterego-vtt/alterego/pkg/config"
	"github.com/spf13/cobra"
)

var (
	recordName    string
	recordEmail   string
	recordActorID int
	recordSceneID int
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create users, actors and tokens",
}

var createUserCmd = &cobra.Command{
	Use:   "user",
	Short: "Create an API user and print its api key",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := stor.NewGormUserStor(aedb.MustConnectToDB(config.GetConfig()))
		user, err := s.CreateUser(&aemodel.User{Name: recordName, Email: recordEmail})
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "User %d (%s) apikey: %s\n", user.ID, user.Slug, user.ApiToken)
		return nil
	},
}

var createActorCmd = &cobra.Command{
	Use:   "actor",
	Short: "Create an actor with an empty variant list",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := stor.NewGormActorStor(aedb.MustConnectToDB(config.GetConfig()))
		actor, err := s.CreateActor(&aemodel.Actor{Name: recordName})
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Actor %d (%s)\n", actor.ID, actor.Slug)
		return nil
	},
}

var createTokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Place a token for an actor on a scene",
	RunE: func(cmd *cobra.Command, args []string) error {
		s := stor.NewGormTokenStor(aedb.MustConnectToDB(config.GetConfig()))
		token, err := s.CreateToken(&aemodel.Token{Name: recordName, ActorID: recordActorID, SceneID: recordSceneID})
		if err != nil {
			return err
		}

		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Token %d for actor %d on scene %d\n", token.ID, token.ActorID, token.SceneID)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createUserCmd, createActorCmd, createTokenCmd)

	createCmd.PersistentFlags().StringVar(&recordName, "name", "", "name")
	createUserCmd.Flags().StringVar(&recordEmail, "email", "", "email address")
	createTokenCmd.Flags().IntVar(&recordActorID, "actor", 0, "actor id")
	createTokenCmd.Flags().IntVar(&recordSceneID, "scene", 0, "scene id")
	_ = createTokenCmd.MarkFlagRequired("actor")
	_ = createActorCmd.MarkFlagRequired("name")
}
