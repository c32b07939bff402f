package main

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/mobilemart/marketplace/internal/client/api"
	"github.com/mobilemart/marketplace/internal/client/gate"
)

type listFlags struct {
	search string
	sort   int
}

func (l *listFlags) bind(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&l.search, "search", "s", "", "match brand or model")
	cmd.Flags().IntVar(&l.sort, "sort", 1, "price order: 1 ascending, -1 descending")
}

func catalogCmd(a *app) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Browse every listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.enter(gate.PathHome); err != nil {
				return err
			}
			items, err := a.client.Catalog(cmd.Context(), lf.search, lf.sort)
			if err != nil {
				return a.check(err)
			}
			a.printMobiles(items)
			return nil
		},
	}
	lf.bind(cmd)
	return cmd
}

func mineCmd(a *app) *cobra.Command {
	var lf listFlags
	cmd := &cobra.Command{
		Use:   "mine",
		Short: "List your own listings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.enter(gate.PathSellerMobiles); err != nil {
				return err
			}
			items, err := a.client.MyMobiles(cmd.Context(), a.store.State().UserID, lf.search, lf.sort)
			if err != nil {
				return a.check(err)
			}
			a.printMobiles(items)
			return nil
		},
	}
	lf.bind(cmd)
	return cmd
}

func showCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one listing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.enter(gate.PathHome); err != nil {
				return err
			}
			m, err := a.client.Mobile(cmd.Context(), args[0])
			if errors.Is(err, api.ErrNotFound) {
				a.notice("Cannot find any mobile.")
				return nil
			}
			if err != nil {
				return a.check(err)
			}
			a.printMobile(m)
			return nil
		},
	}
}

func addCmd(a *app) *cobra.Command {
	var m api.NewMobile
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a listing",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.enter(gate.PathSellerCreate); err != nil {
				return err
			}
			if err := a.client.AddMobile(cmd.Context(), m); err != nil {
				return a.check(err)
			}
			a.success("Mobile added successfully")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&m.Brand, "brand", "", "brand")
	f.StringVar(&m.Model, "model", "", "model")
	f.StringVar(&m.Description, "description", "", "description")
	f.Float64Var(&m.MobilePrice, "price", 0, "price")
	f.IntVar(&m.AvailableQuantity, "quantity", 0, "available quantity")
	for _, name := range []string{"brand", "model", "description", "price", "quantity"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

// editCmd remembers the listing being edited, so a failed edit can be retried
// without repeating the id.
func editCmd(a *app) *cobra.Command {
	var (
		brand, model, description string
		price                     float64
		quantity                  int
	)
	cmd := &cobra.Command{
		Use:   "edit [id]",
		Short: "Update fields of one of your listings",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.enter(gate.PathSellerMobiles); err != nil {
				return err
			}

			id, err := a.editTarget(args)
			if err != nil {
				return err
			}

			var u api.MobileUpdate
			f := cmd.Flags()
			if f.Changed("brand") {
				u.Brand = &brand
			}
			if f.Changed("model") {
				u.Model = &model
			}
			if f.Changed("description") {
				u.Description = &description
			}
			if f.Changed("price") {
				u.MobilePrice = &price
			}
			if f.Changed("quantity") {
				u.AvailableQuantity = &quantity
			}

			if err := a.client.UpdateMobile(cmd.Context(), id, u); err != nil {
				if errors.Is(err, api.ErrNotFound) {
					_ = a.store.ClearEditTarget()
					return errors.New("mobile not found")
				}
				return a.check(err)
			}
			if err := a.store.ClearEditTarget(); err != nil {
				return err
			}
			a.success("Mobile updated successfully")
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&brand, "brand", "", "brand")
	f.StringVar(&model, "model", "", "model")
	f.StringVar(&description, "description", "", "description")
	f.Float64Var(&price, "price", 0, "price")
	f.IntVar(&quantity, "quantity", 0, "available quantity")
	return cmd
}

func (a *app) editTarget(args []string) (string, error) {
	if len(args) == 1 {
		return args[0], a.store.SetEditTarget(args[0])
	}
	id, ok, err := a.store.EditTarget()
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("no listing id given and no edit in progress")
	}
	return id, nil
}

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete one of your listings",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.enter(gate.PathSellerMobiles); err != nil {
				return err
			}
			if err := a.client.DeleteMobile(cmd.Context(), args[0]); err != nil {
				if errors.Is(err, api.ErrNotFound) {
					return errors.New("mobile not found")
				}
				return a.check(err)
			}
			a.success("Mobile deleted successfully")
			return nil
		},
	}
}
