package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reservekit/reserve-client/internal/domain"
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Browse and manage stores",
}

var storeSearchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search stores",
	RunE:  runStoreSearch,
}

var storeShowCmd = &cobra.Command{
	Use:   "show <store-id>",
	Short: "Show one store with its menus",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreShow,
}

var storeCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Register a new store",
	RunE:  runStoreCreate,
}

var storeUpdateCmd = &cobra.Command{
	Use:   "update <store-id>",
	Short: "Update a store",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreUpdate,
}

var storeDeleteCmd = &cobra.Command{
	Use:   "delete <store-id>",
	Short: "Delete a store",
	Args:  cobra.ExactArgs(1),
	RunE:  runStoreDelete,
}

var (
	flagStoreQuery      string
	flagStoreRegistrant string
	flagStoreName       string
	flagStoreAddress    string
	flagStoreDesc       string
	flagPage            int
	flagPageSize        int
)

func init() {
	storeSearchCmd.Flags().StringVar(&flagStoreQuery, "query", "", "text filter on name and description")
	storeSearchCmd.Flags().StringVar(&flagStoreRegistrant, "registrant", "", "filter by registrant username")
	storeSearchCmd.Flags().IntVar(&flagPage, "page", 0, "page number")
	storeSearchCmd.Flags().IntVar(&flagPageSize, "size", 20, "page size")

	for _, c := range []*cobra.Command{storeCreateCmd, storeUpdateCmd} {
		c.Flags().StringVar(&flagStoreName, "name", "", "store name")
		c.Flags().StringVar(&flagStoreAddress, "address", "", "store address")
		c.Flags().StringVar(&flagStoreDesc, "description", "", "store description")
	}

	storeCmd.AddCommand(storeSearchCmd, storeShowCmd, storeCreateCmd, storeUpdateCmd, storeDeleteCmd)
	rootCmd.AddCommand(storeCmd)
}

func runStoreSearch(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	list, err := a.stores.Search(cmd.Context(),
		domain.StoreSearchParams{Query: flagStoreQuery, Registrant: flagStoreRegistrant},
		domain.PageParams{Page: flagPage, Size: flagPageSize},
	)
	if err != nil {
		return err
	}
	fmt.Printf("%d store(s)\n", list.Count)
	for _, store := range list.Results {
		fmt.Printf("  %s  %s, %s (by %s)\n", store.StoreID, store.Name, store.Address, store.Registrant)
	}
	return nil
}

func runStoreShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	store, err := a.stores.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s\n%s\nregistered by %s\n", store.Name, store.Address, store.Description, store.Registrant)

	menus, err := a.menus.ListForStore(cmd.Context(), store.StoreID)
	if err != nil {
		return err
	}
	for _, menu := range menus.Results {
		fmt.Printf("  %s  %s  %d\n", menu.MenuID, menu.Name, menu.Price)
	}
	return nil
}

func runStoreCreate(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	id, err := a.stores.Create(cmd.Context(), domain.StoreCreateRequest{
		Name:        flagStoreName,
		Address:     flagStoreAddress,
		Description: flagStoreDesc,
	})
	if err != nil {
		return err
	}
	fmt.Println("created store", id)
	return nil
}

func runStoreUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return a.stores.Update(cmd.Context(), args[0], domain.StoreCreateRequest{
		Name:        flagStoreName,
		Address:     flagStoreAddress,
		Description: flagStoreDesc,
	})
}

func runStoreDelete(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return a.stores.Delete(cmd.Context(), args[0])
}
