package cli

import (
	"context"
	"errors"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/nutriscan/internal/server/models"
)

// now is a test seam.
var now = time.Now

func (a *App) List(ctx context.Context) error {
	products, err := a.catalogService.List(ctx, a.session)
	if err != nil {
		return err
	}

	if len(products) == 0 {
		fmt.Fprintln(a.out, "No products yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CATALOG ID\tNAME\tBRAND\tNUTRISCORE\tNOVA\tECO")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
			p.CatalogID, p.Attrs.Name, p.Attrs.Brand, p.Attrs.NutritionGrade, p.Attrs.NovaGroup, p.Attrs.EcoGrade)
	}
	return tw.Flush()
}

// Add prompts for a scanned barcode and the product attributes.
func (a *App) Add(ctx context.Context) error {
	catalogID, err := getSimpleText(a.reader, "Barcode", a.out)
	if err != nil {
		return err
	}
	if catalogID == "" {
		return errors.New("barcode is required")
	}

	var attrs models.ProductAttributes
	for _, f := range []struct {
		prompt string
		dst    *string
	}{
		{"Name", &attrs.Name},
		{"Brand", &attrs.Brand},
		{"Nutri-Score grade (a-e)", &attrs.NutritionGrade},
		{"Eco-Score grade (a-e)", &attrs.EcoGrade},
		{"Image URL", &attrs.ImageURL},
	} {
		if *f.dst, err = getSimpleText(a.reader, f.prompt, a.out); err != nil {
			return err
		}
	}

	if attrs.NutritionScore, err = GetOptionalInt(a.reader, "Nutrition score", a.out); err != nil {
		return err
	}
	if attrs.NovaGroup, err = GetOptionalInt(a.reader, "NOVA group (1-4)", a.out); err != nil {
		return err
	}

	attrs.SubmittedOn = now().Format(time.DateOnly)

	p, err := a.catalogService.Add(ctx, a.session, catalogID, attrs)
	if err != nil {
		return err
	}

	fmt.Fprintf(a.out, "Added %s (%d submissions)\n", p.CatalogID, a.session.SubmissionCounter)
	return nil
}

// Delete removes the oldest product with the given barcode.
func (a *App) Delete(ctx context.Context) error {
	catalogID, err := getSimpleText(a.reader, "Barcode", a.out)
	if err != nil {
		return err
	}

	if err := a.catalogService.Delete(ctx, a.session, catalogID); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Product deleted")
	return nil
}
