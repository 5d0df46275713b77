package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Manage the shopping cart",
}

var cartShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the cart contents",
	RunE:  runCartShow,
}

var cartAddCmd = &cobra.Command{
	Use:   "add <menu-id>",
	Short: "Put a menu into the cart",
	Long: `Put a menu into the cart with the given quantity.

The cart belongs to a single store: adding a menu from a different store
replaces the current selection. Quantity 0 removes the menu from the cart.`,
	Args: cobra.ExactArgs(1),
	RunE: runCartAdd,
}

var cartUpdateCmd = &cobra.Command{
	Use:   "update <index> <quantity>",
	Short: "Change the quantity of a cart line (0 removes it)",
	Args:  cobra.ExactArgs(2),
	RunE:  runCartUpdate,
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <index>",
	Short: "Remove a cart line",
	Args:  cobra.ExactArgs(1),
	RunE:  runCartRemove,
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE:  runCartClear,
}

var flagCartQuantity int

func init() {
	cartAddCmd.Flags().IntVar(&flagCartQuantity, "quantity", 1, "quantity to set for the menu")

	cartCmd.AddCommand(cartShowCmd, cartAddCmd, cartUpdateCmd, cartRemoveCmd, cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}

func runCartShow(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	current := a.cart.Cart()
	if current.Empty() {
		fmt.Println("cart is empty")
		return nil
	}
	fmt.Printf("store: %s (%s)\n", current.Store.Name, current.Store.StoreID)
	for i, item := range current.Items {
		fmt.Printf("  [%d] %s  %d x %d = %d\n", i, item.Name, item.Price, item.Quantity, item.Price*item.Quantity)
	}
	fmt.Println("total:", current.Total())
	return nil
}

func runCartAdd(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	menu, err := a.menus.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	store, err := a.stores.Get(cmd.Context(), menu.StoreID)
	if err != nil {
		return err
	}
	return a.cart.AddOrSetItem(store.Ref(), menu, flagCartQuantity)
}

func runCartUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}
	quantity, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid quantity %q", args[1])
	}
	return a.cart.UpdateItemQuantity(index, quantity)
}

func runCartRemove(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	index, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid index %q", args[0])
	}
	return a.cart.RemoveItem(index)
}

func runCartClear(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return a.cart.Clear()
}
