package client

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/pokechain-api/internal/handlers/pokechain/v1alpha1"
)

var (
	listKind      string
	buyBalance    int64
	searchFilter  v1alpha1.SearchListingsRequest
	minPrice      int64
	maxPrice      int64
	salesNFTID    string
	salesLimit    int32
	salesByWallet string
)

var listCmd = &cobra.Command{
	Use:   "list [seller] [nft-id] [price]",
	Short: "List a creature or egg for sale",
	Args:  cobra.ExactArgs(3),
	RunE: func(_ *cobra.Command, args []string) error {
		price, err := strconv.ParseInt(args[2], 10, 64)
		if err != nil {
			return fmt.Errorf("price must be a number: %w", err)
		}
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.CreateListingResponse, error) {
			return c.CreateListing(ctx, &v1alpha1.CreateListingRequest{
				SellerAddress: args[0],
				NFTID:         args[1],
				NFTType:       listKind,
				Price:         price,
			})
		})
	},
}

var buyCmd = &cobra.Command{
	Use:   "buy [buyer] [listing-id]",
	Short: "Purchase an active listing",
	Long: `Purchase an active listing. Without --balance the server reads the
buyer's balance from the chain.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		req := &v1alpha1.PurchaseListingRequest{BuyerAddress: args[0], ListingID: args[1]}
		if cmd.Flags().Changed("balance") {
			req.BuyerBalance = &buyBalance
		}
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.PurchaseListingResponse, error) {
			return c.PurchaseListing(ctx, req)
		})
	},
}

var cancelCmd = &cobra.Command{
	Use:   "cancel [seller] [listing-id]",
	Short: "Cancel an active listing",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.CancelListingResponse, error) {
			return c.CancelListing(ctx, &v1alpha1.CancelListingRequest{Requester: args[0], ListingID: args[1]})
		})
	},
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search marketplace listings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		if cmd.Flags().Changed("min-price") {
			searchFilter.MinPrice = &minPrice
		}
		if cmd.Flags().Changed("max-price") {
			searchFilter.MaxPrice = &maxPrice
		}
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.SearchListingsResponse, error) {
			return c.SearchListings(ctx, &searchFilter)
		})
	},
}

var salesCmd = &cobra.Command{
	Use:   "sales",
	Short: "Show completed sales",
	Args:  cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		return call(func(ctx context.Context, c *v1alpha1.Client) (*v1alpha1.GetSalesHistoryResponse, error) {
			return c.GetSalesHistory(ctx, &v1alpha1.GetSalesHistoryRequest{
				Wallet: salesByWallet,
				NFTID:  salesNFTID,
				Limit:  salesLimit,
			})
		})
	},
}

func init() {
	listCmd.Flags().StringVar(&listKind, "type", "creature", "nft type (creature or egg)")
	buyCmd.Flags().Int64Var(&buyBalance, "balance", 0, "buyer balance to check against instead of the chain")

	searchCmd.Flags().StringVar(&searchFilter.SellerAddress, "seller", "", "only this seller's listings")
	searchCmd.Flags().StringVar(&searchFilter.NFTType, "type", "", "nft type (creature or egg)")
	searchCmd.Flags().Int64Var(&minPrice, "min-price", 0, "minimum price")
	searchCmd.Flags().Int64Var(&maxPrice, "max-price", 0, "maximum price")
	searchCmd.Flags().StringVar(&searchFilter.Rarity, "rarity", "", "creature rarity")
	searchCmd.Flags().StringVar(&searchFilter.Status, "status", "", "listing status (active when empty)")

	salesCmd.Flags().StringVar(&salesByWallet, "wallet", "", "sales where this wallet bought or sold")
	salesCmd.Flags().StringVar(&salesNFTID, "nft", "", "sales of one nft")
	salesCmd.Flags().Int32Var(&salesLimit, "limit", 20, "maximum sales to return")
}
