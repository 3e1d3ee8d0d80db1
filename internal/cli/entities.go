package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/govradar/govradar/internal/output"
)

var entitiesCmd = &cobra.Command{
	Use:   "entities",
	Short: "Work with tracked government entities",
}

var entityListCmd = &cobra.Command{
	Use:   "list",
	Short: "List tracked entities",
	RunE:  runEntityList,
}

var entitySetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Set entity enrichment data used by heat scoring",
	Long: `Set an entity's population and annual budget. These feed the entity
size factor of the heat score; a rescore picks them up.

Examples:
  govradar entities set <id> --population 600000
  govradar entities set <id> --budget 1200000000`,
	Args: cobra.ExactArgs(1),
	RunE: runEntitySet,
}

var (
	entityPopulation string
	entityBudget     string
)

func init() {
	rootCmd.AddCommand(entitiesCmd)
	entitiesCmd.AddCommand(entityListCmd)
	entitiesCmd.AddCommand(entitySetCmd)

	entitySetCmd.Flags().StringVar(&entityPopulation, "population", "", "Population served")
	entitySetCmd.Flags().StringVar(&entityBudget, "budget", "", "Annual budget in dollars")
}

func runEntityList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	entities, err := e.db.ListEntities(ctx)
	if err != nil {
		return fmt.Errorf("failed to list entities: %w", err)
	}
	return output.Output(outputFmt, entities)
}

func runEntitySet(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	e, err := openEnv(ctx)
	if err != nil {
		return err
	}
	defer e.Close()

	entity, err := e.db.GetEntity(ctx, args[0])
	if err != nil {
		return err
	}
	if entity == nil {
		return fmt.Errorf("entity not found: %s", args[0])
	}

	if entityPopulation != "" {
		pop, err := strconv.ParseInt(entityPopulation, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid population: %w", err)
		}
		entity.Population = &pop
	}
	if entityBudget != "" {
		budget, err := strconv.ParseFloat(entityBudget, 64)
		if err != nil {
			return fmt.Errorf("invalid budget: %w", err)
		}
		entity.AnnualBudget = &budget
	}

	if err := e.db.UpdateEntity(ctx, entity); err != nil {
		return fmt.Errorf("failed to update entity: %w", err)
	}

	fmt.Printf("Updated %s\n", entity.Name)
	return nil
}
