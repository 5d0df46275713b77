package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reservekit/reserve-client/internal/domain"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Manage store menus",
}

var menuListCmd = &cobra.Command{
	Use:   "list <store-id>",
	Short: "List a store's menus",
	Args:  cobra.ExactArgs(1),
	RunE:  runMenuList,
}

var menuShowCmd = &cobra.Command{
	Use:   "show <menu-id>",
	Short: "Show one menu",
	Args:  cobra.ExactArgs(1),
	RunE:  runMenuShow,
}

var menuCreateCmd = &cobra.Command{
	Use:   "create <store-id>",
	Short: "Add a menu to a store",
	Args:  cobra.ExactArgs(1),
	RunE:  runMenuCreate,
}

var menuUpdateCmd = &cobra.Command{
	Use:   "update <menu-id>",
	Short: "Update a menu",
	Args:  cobra.ExactArgs(1),
	RunE:  runMenuUpdate,
}

var menuDeleteCmd = &cobra.Command{
	Use:   "delete <menu-id>",
	Short: "Delete a menu",
	Args:  cobra.ExactArgs(1),
	RunE:  runMenuDelete,
}

var (
	flagMenuName  string
	flagMenuPrice int
	flagMenuDesc  string
)

func init() {
	for _, c := range []*cobra.Command{menuCreateCmd, menuUpdateCmd} {
		c.Flags().StringVar(&flagMenuName, "name", "", "menu name")
		c.Flags().IntVar(&flagMenuPrice, "price", 0, "menu price")
		c.Flags().StringVar(&flagMenuDesc, "description", "", "menu description")
	}

	menuCmd.AddCommand(menuListCmd, menuShowCmd, menuCreateCmd, menuUpdateCmd, menuDeleteCmd)
	rootCmd.AddCommand(menuCmd)
}

func runMenuList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	list, err := a.menus.ListForStore(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%d menu(s)\n", list.Count)
	for _, menu := range list.Results {
		fmt.Printf("  %s  %s  %d\n", menu.MenuID, menu.Name, menu.Price)
	}
	return nil
}

func runMenuShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	menu, err := a.menus.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s  %d\n%s\nstore %s\n", menu.Name, menu.Price, menu.Description, menu.StoreID)
	return nil
}

func runMenuCreate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := a.menus.Create(cmd.Context(), args[0], domain.MenuCreateRequest{
		Name:        flagMenuName,
		Price:       flagMenuPrice,
		Description: flagMenuDesc,
	})
	if err != nil {
		return err
	}
	fmt.Println("created menu", id)
	return nil
}

func runMenuUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return a.menus.Update(cmd.Context(), args[0], domain.MenuCreateRequest{
		Name:        flagMenuName,
		Price:       flagMenuPrice,
		Description: flagMenuDesc,
	})
}

func runMenuDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return a.menus.Delete(cmd.Context(), args[0])
}
