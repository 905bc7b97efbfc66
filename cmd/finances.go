package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/investwise"
	"github.com/etnz/investwise/renderer"
	"github.com/google/subcommands"
)

// incomeCmd holds the flags for the 'income' subcommand.
type incomeCmd struct {
	salary, business, other moneyFlag
}

func (*incomeCmd) Name() string     { return "income" }
func (*incomeCmd) Synopsis() string { return "update the monthly income" }
func (*incomeCmd) Usage() string {
	return `iw income [-salary <amount>] [-business <amount>] [-other <amount>]

  Updates the monthly income and prints the financial snapshot.
  Amounts that are not given are left unchanged.
`
}

func (c *incomeCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.salary, "salary", "monthly salary")
	f.Var(&c.business, "business", "monthly business income")
	f.Var(&c.other, "other", "other monthly income")
}

func (c *incomeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, state, err := openState(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	cur := state.Financial.Currency
	income := state.Financial.Income
	for _, u := range []struct {
		flag *moneyFlag
		dst  *investwise.Money
	}{
		{&c.salary, &income.Salary},
		{&c.business, &income.Business},
		{&c.other, &income.Other},
	} {
		if err := u.flag.apply(u.dst, cur); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	state = investwise.UpdateIncome(state, income)
	if err := st.Save(ctx, state); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving state: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SnapshotMarkdown(state.Snapshot()))
	return subcommands.ExitSuccess
}

// expensesCmd holds the flags for the 'expenses' subcommand.
type expensesCmd struct {
	housing, utilities, groceries, transportation, other moneyFlag
}

func (*expensesCmd) Name() string     { return "expenses" }
func (*expensesCmd) Synopsis() string { return "update the monthly expenses" }
func (*expensesCmd) Usage() string {
	return `iw expenses [-housing <amount>] [-utilities <amount>] [-groceries <amount>] [-transportation <amount>] [-other <amount>]

  Updates the monthly expenses and prints the financial snapshot.
  Amounts that are not given are left unchanged.
`
}

func (c *expensesCmd) SetFlags(f *flag.FlagSet) {
	f.Var(&c.housing, "housing", "rent or mortgage")
	f.Var(&c.utilities, "utilities", "utilities")
	f.Var(&c.groceries, "groceries", "groceries")
	f.Var(&c.transportation, "transportation", "transportation")
	f.Var(&c.other, "other", "other expenses")
}

func (c *expensesCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	st, state, err := openState(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading state: %v\n", err)
		return subcommands.ExitFailure
	}
	defer st.Close()

	cur := state.Financial.Currency
	expenses := state.Financial.Expenses
	for _, u := range []struct {
		flag *moneyFlag
		dst  *investwise.Money
	}{
		{&c.housing, &expenses.Housing},
		{&c.utilities, &expenses.Utilities},
		{&c.groceries, &expenses.Groceries},
		{&c.transportation, &expenses.Transportation},
		{&c.other, &expenses.Other},
	} {
		if err := u.flag.apply(u.dst, cur); err != nil {
			fmt.Fprintf(os.Stderr, "Error parsing amount: %v\n", err)
			return subcommands.ExitUsageError
		}
	}

	state = investwise.UpdateExpenses(state, expenses)
	if err := st.Save(ctx, state); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving state: %v\n", err)
		return subcommands.ExitFailure
	}
	printMarkdown(renderer.SnapshotMarkdown(state.Snapshot()))
	return subcommands.ExitSuccess
}
