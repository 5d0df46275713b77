package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/reservekit/reserve-client/internal/domain"
)

var reservationCmd = &cobra.Command{
	Use:   "reservation",
	Short: "Book and manage reservations",
}

var reservationCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Book a reservation from the current cart",
	Long: `Book a reservation from the current cart contents.

The cart's store and menu selections become the reservation payload. On
success the cart is emptied.`,
	RunE: runReservationCreate,
}

var reservationListCmd = &cobra.Command{
	Use:   "list",
	Short: "List your reservations",
	RunE:  runReservationList,
}

var reservationShowCmd = &cobra.Command{
	Use:   "show <reservation-id>",
	Short: "Show one reservation",
	Args:  cobra.ExactArgs(1),
	RunE:  runReservationShow,
}

var reservationUpdateCmd = &cobra.Command{
	Use:   "update <reservation-id>",
	Short: "Change a reservation's name, date, or hour",
	Args:  cobra.ExactArgs(1),
	RunE:  runReservationUpdate,
}

var reservationCancelCmd = &cobra.Command{
	Use:   "cancel <reservation-id>",
	Short: "Cancel a reservation",
	Args:  cobra.ExactArgs(1),
	RunE:  runReservationCancel,
}

var (
	flagReservationName string
	flagReservationDate string
	flagReservationHour int
	flagFilterStoreID   string
	flagFilterDate      string
)

func init() {
	for _, c := range []*cobra.Command{reservationCreateCmd, reservationUpdateCmd} {
		c.Flags().StringVar(&flagReservationName, "name", "", "reservation name")
		c.Flags().StringVar(&flagReservationDate, "date", "", "reservation date (YYYY-MM-DD)")
		c.Flags().IntVar(&flagReservationHour, "hour", 0, "reservation hour (0-23)")
	}

	reservationListCmd.Flags().StringVar(&flagFilterStoreID, "store", "", "filter by store id")
	reservationListCmd.Flags().StringVar(&flagFilterDate, "date", "", "filter by date")
	reservationListCmd.Flags().IntVar(&flagPage, "page", 0, "page number")
	reservationListCmd.Flags().IntVar(&flagPageSize, "size", 20, "page size")

	reservationCmd.AddCommand(reservationCreateCmd, reservationListCmd, reservationShowCmd,
		reservationUpdateCmd, reservationCancelCmd)
	rootCmd.AddCommand(reservationCmd)
}

func runReservationCreate(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	current := a.cart.Cart()
	if current.Empty() {
		return errors.New("cart is empty, nothing to reserve")
	}

	id, err := a.reservations.FromCart(cmd.Context(), current,
		flagReservationName, flagReservationDate, flagReservationHour)
	if err != nil {
		return err
	}
	if err := a.cart.Clear(); err != nil {
		return fmt.Errorf("reservation %s booked but cart not cleared: %w", id, err)
	}
	fmt.Println("booked reservation", id)
	return nil
}

func runReservationList(cmd *cobra.Command, _ []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	list, err := a.reservations.Search(cmd.Context(),
		domain.ReservationSearchParams{StoreID: flagFilterStoreID, Date: flagFilterDate},
		domain.PageParams{Page: flagPage, Size: flagPageSize},
	)
	if err != nil {
		return err
	}
	fmt.Printf("%d reservation(s)\n", list.Count)
	for _, r := range list.Results {
		fmt.Printf("  %s  %s  %s %02d:00  store %s\n", r.ReservationID, r.ReservationName, r.Date, r.Hour, r.StoreID)
	}
	return nil
}

func runReservationShow(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	r, err := a.reservations.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	fmt.Printf("%s\n%s %02d:00\nstore %s\nregistered by %s\n", r.ReservationName, r.Date, r.Hour, r.StoreID, r.Registrant)
	return nil
}

func runReservationUpdate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return a.reservations.Update(cmd.Context(), args[0], domain.ReservationUpdateRequest{
		ReservationName: flagReservationName,
		Date:            flagReservationDate,
		Hour:            flagReservationHour,
	})
}

func runReservationCancel(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	return a.reservations.Cancel(cmd.Context(), args[0])
}
